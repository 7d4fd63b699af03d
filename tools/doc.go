// Package tools provides the built-in workspace tools: the virtual
// filesystem operations (Ls, Read, Write, Edit, Glob), the todo tracker
// (TodoWrite), and the sub-agent dispatch tool (Task).
//
// Every tool is a pure function of the workspace snapshot it finds in its
// context plus its validated input. Mutations travel back as a StateDelta
// on the tool result; the run loop folds them in through the reducers.
// Errors are returned as readable result messages, never raised, so a
// malformed argument costs the model one retry instead of the whole turn.
package tools
