package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/muhammadheryan/sample-api/application/auth"
	"github.com/muhammadheryan/sample-api/cmd/config"
)

// tokengen prints a bearer token signed with the configured JWT settings.
func main() {
	subject := flag.String("sub", "1", "token subject")
	name := flag.String("name", "SampleUser", "display name claim")
	role := flag.String("role", auth.DefaultRole, "role claim")
	flag.Parse()

	issuer, err := auth.NewAuthApp(config.Load(), nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "JWT_SECRET:", err)
		os.Exit(1)
	}

	token, err := issuer.IssueToken(*subject, *name, *role)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
