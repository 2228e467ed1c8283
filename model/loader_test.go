// SPDX-License-Identifier: GPL-2.0-or-later

package model_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"meshview/filesystem"
	"meshview/meshfile"
	"meshview/model"
	"meshview/obj"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tri = "v 0 0 0\nv 5 0 0\nv 0 5 0\nvn 0 0 1\nf 1 2 3\n"

func TestLoadText(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tri.obj"), []byte(tri), 0o644))
	filesystem.UseBaseDir(dir)

	m, err := model.Load(context.Background(), "tri.obj")
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, m.Positions)
	assert.Equal(t, []float32{0, 0, 1}, m.Normals)
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices.Values())
}

func TestLoadCompiled(t *testing.T) {
	src, err := obj.ParseString(tri)
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tri.mesh"), meshfile.Marshal(src), 0o644))
	filesystem.UseBaseDir(dir)

	m, err := model.Load(context.Background(), "tri.mesh")
	require.NoError(t, err)
	assert.Equal(t, src.Positions, m.Positions)
	assert.Equal(t, src.Normals, m.Normals)
	assert.Equal(t, src.Indices.Values(), m.Indices.Values())
}

func TestLoadMissing(t *testing.T) {
	filesystem.UseBaseDir(t.TempDir())
	_, err := model.Load(context.Background(), "missing.obj")
	assert.Error(t, err)
}

func TestDecodeNamesFile(t *testing.T) {
	_, err := model.Decode("broken.obj", []byte("v 0 0 0\nf 1 1 x\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, obj.ErrBadReference)
	assert.Contains(t, err.Error(), "broken.obj")
}

func TestDecodeForwardsOptions(t *testing.T) {
	m, err := model.Decode("tri.obj", []byte(tri), obj.WithIndexWidth(obj.Index32))
	require.NoError(t, err)
	assert.Equal(t, obj.Index32, m.Indices.Width())
}

func TestDecodeRepacksCompiled(t *testing.T) {
	src, err := obj.ParseString(tri)
	require.NoError(t, err)
	require.Equal(t, obj.Index16, src.Indices.Width())
	data := meshfile.Marshal(src)

	m, err := model.Decode("tri.mesh", data, obj.WithIndexWidth(obj.Index32))
	require.NoError(t, err)
	assert.Equal(t, obj.Index32, m.Indices.Width())
	assert.Equal(t, src.Indices.Values(), m.Indices.Uint32())
	assert.Equal(t, src.Positions, m.Positions)

	// without a forced width the stored one is kept
	wide, err := obj.NewMesh(src.Positions, src.Normals, src.Indices.Values(), obj.Index32)
	require.NoError(t, err)
	m, err = model.Decode("tri.mesh", meshfile.Marshal(wide))
	require.NoError(t, err)
	assert.Equal(t, obj.Index32, m.Indices.Width())
}

func TestDecodeCompiledTooWide(t *testing.T) {
	big, err := obj.NewMesh(make([]float32, 3*(obj.MaxVertices16+1)), nil, []uint32{0, 1, obj.MaxVertices16}, obj.IndexAuto)
	require.NoError(t, err)
	require.Equal(t, obj.Index32, big.Indices.Width())

	_, err = model.Decode("big.mesh", meshfile.Marshal(big), obj.WithIndexWidth(obj.Index16))
	assert.ErrorIs(t, err, obj.ErrIndexWidth)
	assert.ErrorContains(t, err, "big.mesh")
}
