// Package workspace renders references into the flat scratch buffer that
// every generated routine receives, so generated code never allocates.
package workspace

import (
	"fmt"
	"strconv"
)

// Buffer is the name of the real-valued work vector in generated signatures.
const Buffer = "w"

// IntBuffer is the name of the integer work vector in generated signatures.
const IntBuffer = "iw"

// Ref returns the address of offset n in the work vector. A negative offset
// means no workspace is needed and yields the null literal.
func Ref(n int) string {
	return ref(Buffer, n)
}

// IntRef is Ref for the integer work vector.
func IntRef(n int) string {
	return ref(IntBuffer, n)
}

func ref(buf string, n int) string {
	switch {
	case n < 0:
		return "0"
	case n == 0:
		return buf
	default:
		return buf + "+" + strconv.Itoa(n)
	}
}

// Elem returns the element at offset n of the work vector. An element
// reference is never optional, so a negative offset panics.
func Elem(n int) string {
	if n < 0 {
		panic(fmt.Sprintf("workspace: element at negative offset %d", n))
	}

	if n == 0 {
		return "*" + Buffer
	}

	return Buffer + "[" + strconv.Itoa(n) + "]"
}

// Offset folds a nonnegative offset into a pointer expression, so that
// callers can pass offset 0 to the routine they invoke.
func Offset(buf string, n int) string {
	if n < 0 {
		panic(fmt.Sprintf("workspace: negative offset %d into %s", n, buf))
	}

	if n == 0 {
		return buf
	}

	return buf + "+" + strconv.Itoa(n)
}
