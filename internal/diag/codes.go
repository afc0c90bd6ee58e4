package diag

import (
	"fmt"
)

// Code identifies a diagnostic class. 1xxx are lexical, 2xxx syntactic.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical.
	LexUnknownChar              Code = 1001
	LexUnterminatedBlockComment Code = 1002
	LexBadNumber                Code = 1003
	LexBadSysIdent              Code = 1004

	// Syntactic.
	SynUnexpectedToken     Code = 2001
	SynExpectIdentifier    Code = 2002
	SynExpectSemicolon     Code = 2003
	SynUnclosedParen       Code = 2004
	SynUnclosedBracket     Code = 2005
	SynExpectModuleHeader  Code = 2006
	SynExpectEndmodule     Code = 2007
	SynExpectAssignTarget  Code = 2008
	SynExpectExpression    Code = 2009
	SynExpectPortBinding   Code = 2010
	SynExpectRangeColon    Code = 2011
	SynUnexpectedTopLevel  Code = 2012
	SynExpectInstanceName  Code = 2013
	SynExpectParameterInit Code = 2014
	SynDuplicateModule     Code = 2015
)

// ID renders the code in the user-facing VLGxxxx form.
func (c Code) ID() string {
	return fmt.Sprintf("VLG%04d", uint16(c))
}

func (c Code) String() string {
	return c.ID()
}
