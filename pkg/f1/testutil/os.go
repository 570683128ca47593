// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"io"
	"os"
)

// StdoutOutputForFunc captures everything f writes to os.Stdout.
func StdoutOutputForFunc(f func()) string {
	r, w, _ := os.Pipe()

	old := os.Stdout
	os.Stdout = w

	f()

	_ = w.Close()
	os.Stdout = old

	out, _ := io.ReadAll(r)

	return string(out)
}

// StderrOutputForFunc captures everything f writes to os.Stderr.
func StderrOutputForFunc(f func()) string {
	r, w, _ := os.Pipe()

	old := os.Stderr
	os.Stderr = w

	f()

	_ = w.Close()
	os.Stderr = old

	out, _ := io.ReadAll(r)

	return string(out)
}
