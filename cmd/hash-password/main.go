// Command hash-password prints bcrypt hashes for manually provisioned
// accounts, for example the first ADMIN user.
//
// Usage:
//
//	hash-password [-cost 12] password [password...]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: hash-password [-cost N] password [password...]")
		os.Exit(2)
	}

	hasher := auth.NewBcryptHasher(*cost)
	failed := false
	for _, password := range flag.Args() {
		if len(password) < domain.MinPasswordLength || len(password) > domain.MaxPasswordLength {
			fmt.Fprintf(os.Stderr, "skipping password of length %d: must be %d to %d bytes\n",
				len(password), domain.MinPasswordLength, domain.MaxPasswordLength)
			failed = true
			continue
		}
		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error generating hash: %v\n", err)
			failed = true
			continue
		}
		fmt.Println(hash)
	}

	if failed {
		os.Exit(1)
	}
}
