package lispp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipeRightFold(t *testing.T) {
	got := runCanon(t, "(pipe! a f g)")
	assert.Equal(t, "(do (g (f a)))", got)
}

func TestPushPopRev(t *testing.T) {
	assert.Equal(t, "(do (insert list -1 val))", runCanon(t, "(push! list val)"))
	assert.Equal(t, "(do (slice x 0 -2))", runCanon(t, "(pop! x)"))
	assert.Equal(t, "(do (slice x -1 0 -1))", runCanon(t, "(rev! x)"))
}

func TestHeadTail(t *testing.T) {
	assert.Equal(t, "(do (@ 0 v))", runCanon(t, "(head! v)"))
	assert.Equal(t, "(do (@ -1 v))", runCanon(t, "(tail! v)"))
}

func TestPutlAppendsNewline(t *testing.T) {
	got := runCanon(t, `(putl! "hi")`)
	assert.Equal(t, `(do (put "hi" "\n"))`, got)
}

func TestInPlaceOperatorExpansion(t *testing.T) {
	assert.Equal(t, "(do (let x (+ x 1)))", runCanon(t, "(+= x 1)"))
}

func TestInPlaceOperatorReversedExpansion(t *testing.T) {
	assert.Equal(t, "(do (let x (+ 1 x)))", runCanon(t, "(=+ x 1)"))
}

func TestForHeadDefaultsIndexAndLength(t *testing.T) {
	got := runCanon(t, "(for! (vector v) (putl! item))")
	assert.Contains(t, got, "__index__")
	assert.Contains(t, got, "__length__")
	assert.Contains(t, got, "(count v)")
}
