package ident

import "testing"

func TestNamespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Super Mario_Bros", "_super_mario_bros"},
		{"Contra", "_contra"},
		{"Mega Man 2", "_mega_man_2"},
		{"a  b__c", "_a_b_c"},
		{" leading", "_leading"},
		{"a _ b", "_a_b"},
		{"Dr. Mario (Rev 1)", "_dr_mario_rev_1"},
		{"!!!", "_"},
		{"", "_"},
		{"魂斗罗", "_魂斗罗"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Namespace(tt.in); got != tt.want {
				t.Errorf("Namespace(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"game over_2", "kGameOver2"},
		{"click", "kClick"},
		{"MENU_BGM", "kMenuBgm"},
		{"8bit sound", "k8BitSound"},
		{"a2b", "kA2b"},
		{"noto-sans.cjk", "kNotosanscjk"},
		{"", "k"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Token(tt.in); got != tt.want {
				t.Errorf("Token(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDeterministic(t *testing.T) {
	const name = "Super Mario_Bros"
	first := Namespace(name)
	for i := 0; i < 10; i++ {
		if got := Namespace(name); got != first {
			t.Fatalf("Namespace not stable: %q vs %q", got, first)
		}
		if Token(name) != Token(name) {
			t.Fatal("Token not stable")
		}
	}
}

func TestDroppedCharactersCollide(t *testing.T) {
	if Namespace("Zelda!") != Namespace("Zelda?") {
		t.Error("names differing only in punctuation should synthesize the same namespace")
	}
}
