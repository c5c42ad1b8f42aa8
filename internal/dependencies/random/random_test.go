package random

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type RandomSuite struct {
	suite.Suite
}

func TestRandomSuite(t *testing.T) {
	suite.Run(t, new(RandomSuite))
}

func (s *RandomSuite) TestCryptoIntnStaysInRange() {
	r := New()
	for range 200 {
		n := r.Intn(7)
		s.GreaterOrEqual(n, 0)
		s.Less(n, 7)
	}
}

func (s *RandomSuite) TestIntnNonPositiveReturnsZero() {
	s.Equal(0, New().Intn(0))
	s.Equal(0, NewSeeded(1).Intn(-3))
}

func (s *RandomSuite) TestSeededIsDeterministic() {
	a := NewSeeded(42)
	b := NewSeeded(42)
	for range 50 {
		s.Equal(a.Intn(36), b.Intn(36))
	}
}

func (s *RandomSuite) TestStringUsesAlphabet() {
	str := NewSeeded(7).String(16, "ab")
	s.Len(str, 16)
	for _, c := range str {
		s.Contains("ab", string(c))
	}
}

func (s *RandomSuite) TestStringEmptyInputs() {
	s.Equal("", New().String(0, "abc"))
	s.Equal("", New().String(5, ""))
}
