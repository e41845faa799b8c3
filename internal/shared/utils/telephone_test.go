package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormaliserTelephone(t *testing.T) {
	tests := []struct {
		entree string
		attend string
	}{
		{"06 12 34 56 78", "0612345678"},
		{"06.12.34.56.78", "0612345678"},
		{"06-12-34-56-78", "0612345678"},
		{"+33 6 12 34 56 78", "33612345678"},
		{"", ""},
		{"abc", ""},
	}
	for _, tt := range tests {
		t.Run(tt.entree, func(t *testing.T) {
			assert.Equal(t, tt.attend, NormaliserTelephone(tt.entree))
		})
	}
}

func TestTelephonesEquivalents(t *testing.T) {
	assert.True(t, TelephonesEquivalents("06 12 34 56 78", "0612345678"))
	assert.True(t, TelephonesEquivalents("+33612345678", "06 12 34 56 78"))
	assert.False(t, TelephonesEquivalents("0612345678", "0712345678"))
	assert.False(t, TelephonesEquivalents("", ""))
}
