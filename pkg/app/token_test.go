package app

import (
	"testing"
	"time"
)

func TestTokenManager_GenerateAndParse(t *testing.T) {
	tm := NewTokenManager(TokenConfig{
		SecretKey: "test-secret",
		Expiry:    time.Hour,
	})

	token, err := tm.Generate(42, "ala", "127.0.0.1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	entity, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if entity.UID != 42 {
		t.Errorf("UID = %d, want 42", entity.UID)
	}
	if entity.Nickname != "ala" {
		t.Errorf("Nickname = %q, want %q", entity.Nickname, "ala")
	}
}

func TestTokenManager_ParseWithWrongKey(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "key-a"})
	token, err := tm.Generate(1, "", "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	other := NewTokenManager(TokenConfig{SecretKey: "key-b"})
	if _, err := other.Parse(token); err == nil {
		t.Error("Parse with wrong key should fail")
	}
}

func TestTokenManager_FileToken(t *testing.T) {
	tm := NewTokenManager(TokenConfig{
		SecretKey:    "test-secret",
		FileTokenKey: "file-secret",
	})

	path := "7/images/abc.png"
	token, err := tm.GenerateFileToken(7, path)
	if err != nil {
		t.Fatalf("GenerateFileToken failed: %v", err)
	}

	entity, err := tm.ParseFileToken(token)
	if err != nil {
		t.Fatalf("ParseFileToken failed: %v", err)
	}
	if entity.Path != path {
		t.Errorf("Path = %q, want %q", entity.Path, path)
	}
	if entity.UID != 7 {
		t.Errorf("UID = %d, want 7", entity.UID)
	}
}

func TestTokenManager_FileTokenNotUserToken(t *testing.T) {
	tm := NewTokenManager(TokenConfig{
		SecretKey:    "test-secret",
		FileTokenKey: "file-secret",
	})

	userToken, err := tm.Generate(1, "", "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := tm.ParseFileToken(userToken); err == nil {
		t.Error("a user token must not validate as a file token")
	}
}
