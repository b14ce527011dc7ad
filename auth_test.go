package main

import "testing"

func TestLoginAndValidate(t *testing.T) {
	a := NewAuth(nil, "hunter2")
	if !a.Enabled() {
		t.Fatal("auth should be enabled with a password configured")
	}

	token, err := a.Login("hunter2", "10.0.0.1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := a.ValidateToken(token); err != nil {
		t.Errorf("valid token rejected: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	a := NewAuth(nil, "hunter2")
	if _, err := a.Login("wrong", "10.0.0.1"); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestAuthDisabledWithoutPassword(t *testing.T) {
	a := NewAuth(nil, "")
	if a.Enabled() {
		t.Error("auth should be disabled without a password")
	}
	if _, err := a.Login("anything", "10.0.0.1"); err == nil {
		t.Error("login must fail when disabled")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	a := NewAuth(nil, "hunter2")
	if err := a.ValidateToken("not.a.token"); err == nil {
		t.Error("garbage token accepted")
	}
}

func TestTokenNotValidAcrossSecrets(t *testing.T) {
	a := NewAuth(nil, "hunter2")
	b := NewAuth(nil, "hunter2") // fresh random secret
	token, err := a.Login("hunter2", "10.0.0.1")
	if err != nil {
		t.Fatal(err)
	}
	if err := b.ValidateToken(token); err == nil {
		t.Error("token validated against a different secret")
	}
}
