package exprjson

import "fmt"

type ExpectedOneOfKindGotKind struct {
	Expected []TokenKind
	Got      TokenKind
	Location Span
}

func (e ExpectedOneOfKindGotKind) Error() string {
	return fmt.Sprintf("got a %s, expected one of %s. %s", e.Got, e.Expected, e.Location)
}

type ExpectedExpression struct {
	Got      TokenKind
	Location Span
}

func (e ExpectedExpression) Error() string {
	return fmt.Sprintf("expected an expression, got a %s. %s", e.Got, e.Location)
}

type DuplicateField struct {
	Name     string
	Location Span
}

func (e DuplicateField) Error() string {
	return fmt.Sprintf("field %s specified more than once. %s", e.Name, e.Location)
}

type InvalidMemberIndex struct {
	Digits   string
	Location Span
}

func (e InvalidMemberIndex) Error() string {
	return fmt.Sprintf("invalid member index %s. %s", e.Digits, e.Location)
}

type UnexpectedRune struct {
	Rune     rune
	Location Span
}

func (e UnexpectedRune) Error() string {
	return fmt.Sprintf("unexpected character %q. %s", e.Rune, e.Location)
}

type UnterminatedLiteral struct {
	Location Span
}

func (e UnterminatedLiteral) Error() string {
	return fmt.Sprintf("unterminated literal. %s", e.Location)
}

type InvalidEscape struct {
	Escape string
}

func (e InvalidEscape) Error() string {
	return fmt.Sprintf("invalid escape sequence %q", e.Escape)
}
