package thread

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis/analysistest"
	"golang.org/x/tools/go/analysis/passes/copylock"
)

// Every copy of a Thread in testdata/copies must be reported by go vet.
func TestThreadCopyIsReported(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}
	dir, err := os.Getwd()
	require.NoError(t, err)
	results := analysistest.Run(t, dir, copylock.Analyzer, "./testdata/copies")
	require.Len(t, results, 1)
	require.Len(t, results[0].Diagnostics, 6)
}
