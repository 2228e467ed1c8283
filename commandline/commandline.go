// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	developer  bool
	fullscreen bool
	window     bool
	index32    bool

	fsaa = boolInt{false, 4}

	height int
	width  int

	basedir string
	config  string
	paths   stringList
)

// stringList collects every occurrence of a repeatable flag.
type stringList []string

func (l *stringList) Set(s string) error {
	if s == "" {
		return errors.New("empty path")
	}
	*l = append(*l, s)
	return nil
}

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

type boolInt struct {
	set bool
	num int
}

func (b *boolInt) IsBoolFlag() bool {
	// We can not support both "-flag" and "-flag 10"
	// This allows "-flag", and "-flag=10"
	// and also "-flag=true" and "-flag=false"
	// but not "-flag 10"
	return true
}

func (b *boolInt) Set(s string) error {
	v, err := strconv.ParseInt(s, 0, strconv.IntSize)
	if err != nil {
		v, err := strconv.ParseBool(s)
		b.set = v
		return err
	}
	b.set = true
	b.num = int(v)
	return nil
}

func (b *boolInt) String() string {
	return fmt.Sprintf("Set: %v, Num: %v", b.set, b.num)
}

func init() {
	flag.BoolVar(&developer, "developer", false, "print debug output")
	flag.BoolVar(&fullscreen, "f", false, "")
	flag.BoolVar(&fullscreen, "fullscreen", false, "run fullscreen")
	flag.BoolVar(&window, "window", false, "run windowed, overrides the config")
	flag.BoolVar(&window, "w", false, "")
	flag.BoolVar(&index32, "index32", false, "always use 32 bit indices")

	flag.Var(&fsaa, "fsaa", "enable multisampling, optional number of samples")

	flag.IntVar(&height, "height", -1, "window height, negative is unset")
	flag.IntVar(&width, "width", -1, "window width, negative is unset")

	flag.StringVar(&basedir, "basedir", ".", "directory to search for meshes")
	flag.StringVar(&config, "config", "", "config file, empty for none")
	flag.Var(&paths, "path", "additional mesh directory, searched before basedir, repeatable")
}

func BaseDirectory() string {
	return basedir
}

// SearchPaths returns the -path directories in command line order.
func SearchPaths() []string {
	return paths
}

func ConfigFile() string {
	return config
}

func Developer() bool {
	return developer
}

func Height() int {
	return height
}

func Width() int {
	return width
}

func Fsaa() bool {
	return fsaa.set
}

func FsaaSamples() int {
	return fsaa.num
}

func Fullscreen() bool {
	return fullscreen
}

func Window() bool {
	return window
}

func Index32() bool {
	return index32
}

// Override is a '+name value' pair of the command line.
type Override struct {
	Name  string
	Value string
}

// Split separates positional arguments from '+name value' overrides.
// A '+name' without value is an error.
func Split(args []string) ([]string, []Override, error) {
	var pos []string
	var ovr []Override
	for i := 0; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "+") || len(a) == 1 {
			pos = append(pos, a)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, errors.Errorf("%s needs a value", a)
		}
		ovr = append(ovr, Override{Name: a[1:], Value: args[i+1]})
		i++
	}
	return pos, ovr, nil
}
