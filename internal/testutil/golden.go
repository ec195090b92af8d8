// Package testutil provides shared test helpers: golden-file assertions
// for full-document regression tests.
package testutil

import (
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenFile wraps goldie with the fixture directory novelbridge's tests
// use.
type GoldenFile struct {
	g *goldie.Goldie
}

// NewGoldenFile returns a GoldenFile storing fixtures under dir.
func NewGoldenFile(t *testing.T, dir string) *GoldenFile {
	t.Helper()
	return &GoldenFile{
		g: goldie.New(t,
			goldie.WithFixtureDir(dir),
			goldie.WithNameSuffix(".golden"),
		),
	}
}

// Assert compares actual against the named golden fixture, failing the
// test (with a diff) on mismatch. Run `go test -update` to (re)write
// fixtures after an intentional change.
func (gf *GoldenFile) Assert(t *testing.T, name string, actual []byte) {
	t.Helper()
	gf.g.Assert(t, name, actual)
}

// AssertFile compares the contents of the file at path against the named
// golden fixture.
func (gf *GoldenFile) AssertFile(t *testing.T, name, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("testutil: read %s: %v", path, err)
	}
	gf.g.Assert(t, name, data)
}
