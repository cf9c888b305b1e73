// Command pwhash reads a password from the terminal and prints its bcrypt
// digest, for provisioning accounts or fixtures by hand.
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/dmitrijs2005/authd/internal/server/auth"
)

func main() {

	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.Fatalf("read password: %v", err)
	}

	fmt.Fprint(os.Stderr, "Repeat: ")
	repeat, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.Fatalf("read password: %v", err)
	}

	if string(password) != string(repeat) {
		log.Fatal("passwords do not match")
	}
	if len(password) == 0 {
		log.Fatal("password must not be empty")
	}

	digest, err := auth.HashPassword(string(password))
	if err != nil {
		log.Fatalf("hash: %v", err)
	}

	fmt.Println(digest)
}
