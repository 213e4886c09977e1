package rl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T) (*Resolver, *Registry) {
	t.Helper()
	tab, reg := newTestRegistry(t)
	return NewResolver(tab, reg, nil), reg
}

func keyDown(id string, loc Location, code int, char string) RawKeyEvent {
	return RawKeyEvent{Kind: KeyDown, ID: id, Location: loc, Code: code, Char: char}
}

func keyPress(code int, char string) RawKeyEvent {
	return RawKeyEvent{Kind: KeyPress, Code: code, Char: char}
}

func keyUp(id string, loc Location, code int) RawKeyEvent {
	return RawKeyEvent{Kind: KeyUp, ID: id, Location: loc, Code: code}
}

func TestResolveDigitWithMismatchedRelease(t *testing.T) {
	r, _ := newTestResolver(t)

	res := r.Resolve(keyDown("D5", LocationStandard, 53, ""))
	assert.Equal(t, ID(KeyD5), res.Key)
	assert.True(t, r.Test(ID(KeyD5)))
	assert.False(t, r.Test(ID(KeyUnknown)))

	res = r.Resolve(keyUp("U+0025", LocationStandard, 53))
	assert.Equal(t, ID(KeyUnknown), res.Key)
	assert.False(t, r.Test(ID(KeyD5)))
	assert.True(t, r.Keys().Empty())
}

func TestResolveShiftBothSides(t *testing.T) {
	r, _ := newTestResolver(t)

	r.Resolve(keyDown("Shift", LocationLeft, 16, ""))
	r.Resolve(keyDown("Shift", LocationRight, 16, ""))
	assert.True(t, r.Test(ID(KeyLeftShift)))
	assert.True(t, r.Test(ID(KeyRightShift)))

	res := r.Resolve(keyUp("Shift", LocationStandard, 16))
	assert.Equal(t, ID(KeyReleaseShift), res.Key)
	assert.False(t, r.Test(ID(KeyLeftShift)))
	assert.False(t, r.Test(ID(KeyRightShift)))
	assert.True(t, r.Keys().Empty())
}

func TestResolveSidedReleaseClearsBothSides(t *testing.T) {
	tests := []struct {
		raw         string
		left, right Key
	}{
		{"Control", KeyLeftControl, KeyRightControl},
		{"Alt", KeyLeftAlt, KeyRightAlt},
		{"OS", KeyLeftOS, KeyRightOS},
		{"Meta", KeyMetaLeft, KeyMetaRight},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r, _ := newTestResolver(t)
			r.Resolve(keyDown(tt.raw, LocationLeft, 1, ""))
			r.Resolve(keyDown(tt.raw, LocationRight, 2, ""))
			require.True(t, r.Test(ID(tt.left)))
			require.True(t, r.Test(ID(tt.right)))

			r.Resolve(keyUp(tt.raw, LocationLeft, 1))
			assert.False(t, r.Test(ID(tt.left)))
			assert.False(t, r.Test(ID(tt.right)))
		})
	}
}

func TestResolveRepeatIsIdempotent(t *testing.T) {
	r, _ := newTestResolver(t)
	r.Resolve(keyDown("U+0041", LocationStandard, 65, ""))
	r.Resolve(keyPress(65, "a"))
	once := r.Keys().Clone()

	for i := 0; i < 5; i++ {
		r.Resolve(keyDown("U+0041", LocationStandard, 65, ""))
		r.Resolve(keyPress(65, "a"))
		assert.True(t, r.Keys().Equal(once), "after %d repeats", i+1)
	}

	r.Resolve(keyUp("U+0041", LocationStandard, 65))
	assert.True(t, r.Keys().Empty())
}

func TestResolveAliasedRelease(t *testing.T) {
	r, _ := newTestResolver(t)
	r.Resolve(keyDown("U+0041", LocationStandard, 65, ""))
	require.True(t, r.Test(ID(KeyLA)))

	res := r.Resolve(keyUp("U+0042", LocationStandard, 65))
	assert.Equal(t, ID(KeyLB), res.Key)
	assert.False(t, r.Test(ID(KeyLA)))
	assert.False(t, r.Test(ID(KeyLB)))
}

func TestResolvePressReusesDown(t *testing.T) {
	r, _ := newTestResolver(t)
	r.Resolve(keyDown("U+0031", LocationStandard, 49, ""))
	res := r.Resolve(keyPress(0, "1"))
	assert.Equal(t, Resolution{Key: ID(KeyD1), State: ID(KeyD1), Char: "1"}, res)
	assert.True(t, r.Test(ID(KeyD1)))
	assert.False(t, r.Test(CharID("1")))
}

func TestResolveUnknownKeyWithCharacter(t *testing.T) {
	r, reg := newTestResolver(t)
	n := reg.Len()

	res := r.Resolve(keyDown("Unidentified", LocationStandard, 192, "ö"))
	assert.Equal(t, ID(KeyUnknown), res.Key)
	assert.Equal(t, CharID("ö"), res.State)
	assert.True(t, r.Test(CharID("ö")))
	assert.False(t, r.Test(ID(KeyUnknown)))
	assert.Equal(t, n+1, reg.Len())

	r.Resolve(keyUp("Unidentified", LocationStandard, 192))
	assert.True(t, r.Keys().Empty())
}

func TestResolveCharacterFromPress(t *testing.T) {
	r, _ := newTestResolver(t)

	r.Resolve(keyDown("Unidentified", LocationStandard, 222, ""))
	assert.True(t, r.Test(ID(KeyUnknown)))

	res := r.Resolve(keyPress(0, "#"))
	assert.Equal(t, CharID("#"), res.State)
	assert.True(t, r.Test(CharID("#")))

	r.Resolve(keyUp("Unidentified", LocationStandard, 222))
	assert.False(t, r.Test(CharID("#")))
	assert.False(t, r.Test(ID(KeyUnknown)))
}

func TestResolveCharacterReleaseClearsUnknown(t *testing.T) {
	r, _ := newTestResolver(t)
	r.Resolve(keyDown("Unidentified", LocationStandard, 1, ""))
	r.Resolve(keyPress(0, "€"))
	require.True(t, r.Test(ID(KeyUnknown)))
	require.True(t, r.Test(CharID("€")))

	// The release reports another code but still carries the character.
	r.Resolve(RawKeyEvent{Kind: KeyUp, ID: "Unidentified", Code: 2, Char: "€"})
	assert.False(t, r.Test(CharID("€")))
	assert.False(t, r.Test(ID(KeyUnknown)))
}

func TestResolvePunctuationFallsBackToCharacter(t *testing.T) {
	r, _ := newTestResolver(t)
	res := r.Resolve(keyDown("U+00BD", LocationStandard, 189, "-"))
	assert.Equal(t, ID(KeyUnknown), res.Key)
	assert.Equal(t, CharID("-"), res.State)

	tab := MustTable(PunctuationDistinct)
	d := NewResolver(tab, NewRegistry(tab, nil), nil)
	res = d.Resolve(keyDown("U+00BD", LocationStandard, 189, "-"))
	assert.Equal(t, ID(KeyMinus), res.Key)
	assert.True(t, d.Test(ID(KeyMinus)))
	assert.False(t, d.Test(CharID("-")))
}

func TestResolveIgnoresUnprintableCharacters(t *testing.T) {
	r, _ := newTestResolver(t)
	for _, c := range []string{"\x01", "ab", "\u200b", string([]byte{0xff})} {
		res := r.Resolve(keyDown("U+0041", LocationStandard, 65, c))
		assert.Empty(t, res.Char, "%q", c)
	}
	res := r.Resolve(keyDown("U+0041", LocationStandard, 65, "a"))
	assert.Equal(t, "a", res.Char)
}

func TestResolveGrowsKeyState(t *testing.T) {
	r, reg := newTestResolver(t)
	r.Resolve(keyDown("Shift", LocationLeft, 16, ""))
	words := reg.Words()

	for i := 0; i < 2*wordBits; i++ {
		c := string(rune(0x4E00 + i))
		r.Resolve(keyDown("Unidentified", LocationStandard, 1000+i, c))
	}
	require.Greater(t, reg.Words(), words)
	assert.Equal(t, reg.Words(), r.Keys().Len())
	assert.True(t, r.Test(ID(KeyLeftShift)))
	assert.True(t, r.Test(CharID(string(rune(0x4E00)))))
}

func TestResolversShareRegistry(t *testing.T) {
	tab, reg := newTestRegistry(t)
	a := NewResolver(tab, reg, nil)
	b := NewResolver(tab, reg, nil)

	a.Resolve(keyDown("U+0041", LocationStandard, 65, ""))
	assert.True(t, a.Test(ID(KeyLA)))
	assert.False(t, b.Test(ID(KeyLA)))

	// b's memory of codes is its own.
	b.Resolve(keyUp("U+0042", LocationStandard, 65))
	assert.True(t, a.Test(ID(KeyLA)))
}

func TestResolverReset(t *testing.T) {
	r, _ := newTestResolver(t)
	r.Resolve(keyDown("U+0041", LocationStandard, 65, ""))
	r.Resolve(keyDown("Control", LocationLeft, 17, ""))
	r.Reset()
	assert.True(t, r.Keys().Empty())

	r.Resolve(keyUp("U+0041", LocationStandard, 65))
	assert.True(t, r.Keys().Empty())
}

func TestResolverDebug(t *testing.T) {
	r, reg := newTestResolver(t)
	r.Resolve(keyDown("Shift", LocationLeft, 16, ""))
	d := r.Debug()
	assert.Equal(t, "rawKeyId: Shift keyLoc: 1", d.Raw)
	assert.Equal(t, "rlKeyId: LeftShift []", d.Key)
	assert.Len(t, d.Bits, 2*reg.Words())

	r.Resolve(keyDown("U+0041", LocationStandard, 65, ""))
	r.Resolve(keyPress(0, "a"))
	d = r.Debug()
	assert.Equal(t, "rawKeyId:  keyLoc: 0", d.Raw)
	assert.Equal(t, "rlKeyId: LA [a]", d.Key)
}

func TestKeyEventKindString(t *testing.T) {
	assert.Equal(t, "keydown", KeyDown.String())
	assert.Equal(t, "keypress", KeyPress.String())
	assert.Equal(t, "keyup", KeyUp.String())
	assert.Equal(t, "KeyEventKind(9)", KeyEventKind(9).String())
}
