// Command libsikort packages the runtime as a C archive for generated code
// to link against:
//
//	go build -buildmode=c-archive -o libsikort.a ./cmd/libsikort
//
// Without cgo the package builds to an empty program.
package main

func main() {}
