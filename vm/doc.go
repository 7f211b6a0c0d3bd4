// Package vm compiles arithmetic expression trees into a flat, reverse-Polish
// instruction sequence and executes it on a stack machine.
//
// A Program is a []Op. Compile emits the base instruction set (LIT, ADD, SUB,
// MUL, DIV) in reverse-Polish order, so running a compiled program from an
// empty stack never underflows and leaves exactly one value behind.
//
// Several interchangeable backends execute the same Program with identical
// results and different performance characteristics:
//
//   - Run: growable slice stack, one transition function per instruction.
//   - RunArray: preallocated array with an explicit stack pointer; fails
//     with ErrStackOverflow instead of growing.
//   - RunCompact: one byte per instruction plus a side table of constants
//     (see Encode and RunBytecode).
//   - RunCached: keeps the top of stack in a local and spills to the array
//     only on the next push.
//   - RunFused: rewrites common instruction windows into superinstructions
//     (see Fuse) before running.
//
// Programs are never modified by execution and may be run concurrently; each
// run owns its own stack.
//
// Division by zero is not an error; results follow IEEE-754 float64
// arithmetic. Stack underflow and overflow abort the run with a
// *RuntimeError wrapping ErrStackUnderflow or ErrStackOverflow.
package vm
