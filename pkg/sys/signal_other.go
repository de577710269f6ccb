//go:build !unix

package sys

func ignoreJobControl() {}
