// SPDX-License-Identifier: GPL-2.0-or-later

package conlog

import (
	"fmt"
	"log"
	"testing"
)

func TestDPrintf(t *testing.T) {
	var out string
	SetSafePrintf(func(s string, a ...any) {
		out += fmt.Sprintf(s, a...)
	})
	defer SetSafePrintf(log.Printf)

	DPrintf("hidden %d\n", 1)
	if out != "" {
		t.Errorf("DPrintf without developer = %q", out)
	}
	SetDeveloper(true)
	defer SetDeveloper(false)
	DPrintf("shown %d\n", 2)
	if out != "shown 2\n" {
		t.Errorf("DPrintf with developer = %q", out)
	}
}
