package testutil

// Canned trees shared by package tests.

// PassingTree has one suite whose cases all pass against the fake tool.
const PassingTree = `
-- tests/basics/add.rev --
print 40 + 2; // expect: 42
-- outputs/basics/add.rev --
42
-- tests/basics/undefined.rev --
print x; // error: undefined variable x
-- outputs/basics/undefined.rev --
error: undefined variable x
  --> basics/undefined.rev:1:7
 1 | print x;
   |       ^
-- outputs/basics/undefined.rev.exit --
65
`

// MixedTree covers a pass, a short result list, a malformed annotation and
// a benchmark directory that must never run.
const MixedTree = `
-- tests/benchmark/fib.rev --
print fib(30); // expect: 832040
-- tests/basics/add.rev --
print 40 + 2; // expect: 42
-- outputs/basics/add.rev --
42
-- tests/basics/two.rev --
print 1; // expect: 1
print 2; // expect: 2
-- outputs/basics/two.rev --
1
-- tests/broken/bare.rev --
print y; // error
-- tests/broken/after.rev --
print "ok"; // expect: ok
-- outputs/broken/after.rev --
ok
-- tests/README.md --
not a suite
`
