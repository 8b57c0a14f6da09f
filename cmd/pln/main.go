package main

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

func main() {
	bin, err := exec.LookPath("planline")
	if err != nil {
		fmt.Fprintln(os.Stderr, "pln: planline not found on PATH")
		os.Exit(1)
	}
	if err := syscall.Exec(bin, append([]string{"planline"}, os.Args[1:]...), os.Environ()); err != nil {
		fmt.Fprintf(os.Stderr, "pln: %v\n", err)
		os.Exit(1)
	}
}
