//go:build debug

package debug

import "fmt"

const Debug = true

func init() {
	fmt.Println("WARNING -- DEBUG FLAG IS ON")
}

// Assert panics if condition is false.
func Assert(condition bool, message ...string) {
	if !condition {
		if len(message) > 0 {
			panic(message[0])
		}
		panic("assertion failed")
	}
}
