package naming_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/naming"
)

func TestCompose(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		name                    string
		fullName, oldFrag, newF string
		want                    string
	}{
		{"color fragment", "Adela KAKAO", "KAKAO", "CZEKOLADA", "Adela CZEKOLADA"},
		{"stock fragment", "Adela KAKAO", "Adela", "Adelka", "Adelka KAKAO"},
		{"missing fragment", "Adela KAKAO", "MOCHA", "X", "Adela KAKAO"},
		{"suffix kept", "Antek CZARNY z kapturem", "CZARNY", "GRAFIT", "Antek GRAFIT z kapturem"},
		{"every occurrence", "MIX MIX", "MIX", "DUO", "DUO DUO"},
		{"regex metacharacters", "Pasek 3.5 (wąski)", "3.5 (wąski)", "4.0", "Pasek 4.0"},
		{"empty old fragment", "Adela KAKAO", "", "X", "Adela KAKAO"},
		{"same fragment", "Adela KAKAO", "KAKAO", "KAKAO", "Adela KAKAO"},
	}
	for _, tt := range tests {
		c.Run(tt.name, func(c *qt.C) {
			c.Assert(naming.Compose(tt.fullName, tt.oldFrag, tt.newF), qt.Equals, tt.want)
		})
	}
}

func TestJoin(t *testing.T) {
	c := qt.New(t)
	c.Assert(naming.Join("Adela", "KAKAO"), qt.Equals, "Adela KAKAO")
	c.Assert(naming.Join(" ", "KAKAO"), qt.Equals, "KAKAO")
	c.Assert(naming.Join(), qt.Equals, "")
}

func TestChecksum(t *testing.T) {
	c := qt.New(t)

	// 1*1 + 2*3 + 3*1 = 10 -> 0
	c.Assert(naming.Checksum("123"), qt.Equals, 0)
	// 5*1 + 0*3 + 0*1 + 1*3 = 8 -> 2
	c.Assert(naming.Checksum("5001"), qt.Equals, 2)
	c.Assert(naming.Checksum(""), qt.Equals, 0)
}

func TestJacketCode(t *testing.T) {
	c := qt.New(t)

	code := naming.JacketCode("123", "45")
	c.Assert(code, qt.HasLen, 13)
	c.Assert(code[:12], qt.Equals, "123450000000")
	// 1+6+3+12+5 = 27 -> 3
	c.Assert(code[12:], qt.Equals, "3")
}

func TestRemainingBarcode(t *testing.T) {
	c := qt.New(t)

	code := naming.RemainingBarcode("7", 12, "PASEK.45")
	c.Assert(code, qt.HasLen, 13)
	c.Assert(code[:12], qt.Equals, "000070012045")
	// 7 + 1*3 + 2 + 4 + 5*3 = 31 -> 9
	c.Assert(code[12:], qt.Equals, "9")

	c.Assert(naming.RemainingBarcode("12", 3, "R.123")[:12], qt.Equals, "000120003123")
	c.Assert(naming.RemainingBarcode("12", 3, "BEZKROPKI")[:12], qt.Equals, "000120003000")
}

func TestAfterDotDigits(t *testing.T) {
	c := qt.New(t)
	c.Assert(naming.AfterDotDigits("X.123"), qt.Equals, "123")
	c.Assert(naming.AfterDotDigits("X.1234"), qt.Equals, "123")
	c.Assert(naming.AfterDotDigits("X.5"), qt.Equals, "5")
	c.Assert(naming.AfterDotDigits("X"), qt.Equals, "")
}
