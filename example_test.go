package goToken_test

import (
	"fmt"
	"time"

	goToken "github.com/MrEthical07/goToken"
)

// ExampleNew builds an engine from the environment. LoadConfig reads
// GOTOKEN_JWT_SECRET and the other GOTOKEN_* variables.
func ExampleNew() {
	cfg, err := goToken.LoadConfig(".env")
	if err != nil {
		return
	}

	engine, err := goToken.New().WithConfig(cfg).Build()
	if err != nil {
		return
	}
	defer engine.Close()
}

func ExampleEngine_ExtractSubject() {
	cfg := goToken.DefaultConfig()
	cfg.JWT.Secret = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="

	engine, err := goToken.New().WithConfig(cfg).Build()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer engine.Close()

	token, _ := engine.Issue("alice")
	subject, err := engine.ExtractSubject(token)
	fmt.Println(subject, err)

	_, err = engine.ExtractSubject("not-a-token")
	fmt.Println(goToken.KindOf(err))
	// Output:
	// alice <nil>
	// malformed
}

func ExampleEngine_ValidateAt() {
	cfg := goToken.DefaultConfig()
	cfg.JWT.Secret = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="
	cfg.JWT.ExpirationMs = 60_000

	engine, err := goToken.New().WithConfig(cfg).Build()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer engine.Close()

	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	token, _ := engine.IssueAt("alice", issuedAt)

	fmt.Println(engine.ValidateAt(token, issuedAt.Add(59*time.Second)).Valid())
	fmt.Println(engine.ValidateAt(token, issuedAt.Add(time.Minute)).Kind)
	// Output:
	// true
	// expired
}
