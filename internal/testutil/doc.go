// Package testutil builds fixture trees for tests.
//
// Trees are described as txtar archives. Files under tests/ become the
// fixture root, files under outputs/ are what the fake tool prints for the
// fixture at the same relative path:
//
//	-- tests/basics/add.rev --
//	print 40 + 2; // expect: 42
//	-- outputs/basics/add.rev --
//	42
//
// WriteFakeTool installs a shell script at target/debug/rev, the default
// tool location relative to the fixture root, that replays those outputs.
package testutil
