package detector

import (
	"testing"
)

// One shared detector: building the language models dominates test time.
var shared = New()

func TestDetector_Detect_Empty(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		if _, ok := shared.Detect(text); ok {
			t.Errorf("Detect(%q) ok = true, want false", text)
		}
	}
}

func TestDetector_DetectISO(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantCode string
	}{
		{name: "english text", text: "Welcome back! Your order has been shipped.", wantCode: "en"},
		{name: "korean text", text: "다시 오신 것을 환영합니다. 주문하신 상품이 발송되었습니다.", wantCode: "ko"},
		{name: "german text", text: "Willkommen zurück! Ihre Bestellung wurde versandt.", wantCode: "de"},
		{name: "french text", text: "Bon retour ! Votre commande a été expédiée.", wantCode: "fr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := shared.DetectISO(tt.text)
			if !ok {
				t.Fatalf("DetectISO(%q) ok = false", tt.text)
			}
			if code != tt.wantCode {
				t.Errorf("DetectISO(%q) = %q, want %q", tt.text, code, tt.wantCode)
			}
		})
	}
}

func TestDetector_DetectPhrases(t *testing.T) {
	phrases := []string{
		"Sign in to your account",
		"Forgot your password?",
		"The settings were saved successfully.",
	}

	code, ok := shared.DetectPhrases(phrases)
	if !ok {
		t.Fatal("expected a detection for english phrases")
	}
	if code != "en" {
		t.Errorf("expected en, got %q", code)
	}
}

func TestDetector_DetectPhrases_Empty(t *testing.T) {
	if _, ok := shared.DetectPhrases(nil); ok {
		t.Error("expected no detection for an empty phrase list")
	}
}
