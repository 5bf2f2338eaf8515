// Package fixture finds golden-file fixtures and reads the expectations
// embedded in them.
//
// A fixture root holds one directory per suite and each suite holds one
// file per case:
//
//	tests/
//	    basics/
//	        add.rev
//	        undefined.rev
//	    benchmark/      (skipped)
//
// A case file is ordinary source for the tool under test. Comment lines
// carry the expected results in file order:
//
//	print 40 + 2; // expect: 42
//	print x;      // error: undefined variable x
//
// Any line mentioning "error" is an error annotation and must contain
// "error: "; otherwise any line mentioning "expect" is an expect annotation
// and must contain "expect: ". A line that mentions a keyword without its
// separator is malformed.
package fixture
