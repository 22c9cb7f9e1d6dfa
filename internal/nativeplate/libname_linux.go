//go:build linux

package nativeplate

func defaultLibraryName() string {
	return "libplatec.so"
}
