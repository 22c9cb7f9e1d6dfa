//go:build darwin

package nativeplate

func defaultLibraryName() string {
	return "libplatec.dylib"
}
