//go:build windows

package nativeplate

func defaultLibraryName() string {
	return "platec.dll"
}
