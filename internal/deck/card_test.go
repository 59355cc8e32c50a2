package deck

import "testing"

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "high spades",
			input: "AsKsQsJsTs",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Spades, Rank: King},
				{Suit: Spades, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Ten},
			},
		},
		{
			name:  "mixed suits",
			input: "AhKdQcJs9s",
			expected: []Card{
				{Suit: Hearts, Rank: Ace},
				{Suit: Diamonds, Rank: King},
				{Suit: Clubs, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Nine},
			},
		},
		{
			name:  "case insensitive",
			input: "asKHqDjc",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: King},
				{Suit: Diamonds, Rank: Queen},
				{Suit: Clubs, Rank: Jack},
			},
		},
		{
			name:    "invalid rank",
			input:   "XsKs",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "AsKx",
			wantErr: true,
		},
		{
			name:    "odd length",
			input:   "AsK",
			wantErr: true,
		},
		{
			name:     "empty string",
			input:    "",
			expected: []Card{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseCards() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("ParseCards() returned %d cards, want %d", len(got), len(tt.expected))
			}
			for i, card := range got {
				if card != tt.expected[i] {
					t.Errorf("card %d = %v, want %v", i, card, tt.expected[i])
				}
			}
		})
	}
}

func TestCardString(t *testing.T) {
	tests := []struct {
		card     Card
		expected string
	}{
		{Card{Suit: Spades, Rank: Ace}, "A♠"},
		{Card{Suit: Hearts, Rank: Ten}, "T♥"},
		{Card{Suit: Diamonds, Rank: Two}, "2♦"},
		{Card{Suit: Clubs, Rank: Queen}, "Q♣"},
	}

	for _, tt := range tests {
		if got := tt.card.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestCardCodeRoundTrip(t *testing.T) {
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			card := NewCard(suit, rank)
			parsed, err := ParseCard(card.Code())
			if err != nil {
				t.Fatalf("ParseCard(%q): %v", card.Code(), err)
			}
			if parsed != card {
				t.Errorf("round trip %v -> %q -> %v", card, card.Code(), parsed)
			}
		}
	}
}

func TestCardValueOrdering(t *testing.T) {
	// Rank orders cards; suit does not
	low := Card{Suit: Spades, Rank: Two}
	high := Card{Suit: Clubs, Rank: Ace}
	if low.Value() >= high.Value() {
		t.Errorf("expected %v < %v", low, high)
	}

	sameRank := Card{Suit: Hearts, Rank: Two}
	if low.Value() != sameRank.Value() {
		t.Errorf("expected equal values for %v and %v", low, sameRank)
	}
}
