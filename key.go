package penumbra

import (
	"fmt"
	"strconv"
)

type keyKind uint8

const (
	kindString keyKind = iota + 1
	kindInt
	kindToken
)

// Token is an opaque field name. Every call to NewToken yields a distinct
// key, so two tokens never collide even when their descriptions match. The
// description is only used for diagnostics.
type Token struct {
	description string
}

func NewToken(description string) *Token {
	return &Token{description: description}
}

func (t *Token) String() string {
	return fmt.Sprintf("token(%s)", t.description)
}

// Key names a field on either side of a mapping. A Key is one of three
// kinds: a string, an integer, or an opaque Token. Keys are comparable and
// usable directly as Go map keys; token keys compare by token identity.
//
// The zero Key names nothing. Lookups that miss report it alongside
// ok == false.
type Key struct {
	kind keyKind
	str  string
	num  int64
	tok  *Token
}

func StringKey(name string) Key {
	return Key{kind: kindString, str: name}
}

func IntKey(n int64) Key {
	return Key{kind: kindInt, num: n}
}

func TokenKey(t *Token) Key {
	return Key{kind: kindToken, tok: t}
}

// IsZero reports whether k is the zero "no key" value.
func (k Key) IsZero() bool {
	return k.kind == 0
}

func (k Key) String() string {
	switch k.kind {
	case kindString:
		return k.str
	case kindInt:
		return strconv.FormatInt(k.num, 10)
	case kindToken:
		return k.tok.String()
	default:
		return "<no key>"
	}
}

// stringName returns the string payload when k is a string key. Only string
// keys participate in name-transformer derivation.
func (k Key) stringName() (string, bool) {
	if k.kind == kindString {
		return k.str, true
	}
	return "", false
}
