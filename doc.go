// Package deepagent implements a tool-using agent that plans with a todo
// list, works against an in-memory virtual filesystem, and decomposes work
// by delegating sub-tasks to isolated, tool-scoped sub-agents.
//
// The workspace (transcript, todos, and virtual files) is a persistent
// value type. Tools never mutate it: they return a [StateDelta] that the
// run loop folds in through pure per-field reducers, so many tool calls in
// one turn (or across a parent/child dispatch boundary) merge into a single
// consistent state without shared mutable memory.
//
// # Quick Start
//
//	a := deepagent.NewAgent(deepagent.WithModel(anthropic.ModelClaudeSonnet4_5))
//	tools.RegisterAll(a.Tools())
//	stream := a.Run(ctx, "Write a report into /report.md")
//	for stream.Next() {
//	    if e, ok := stream.Current().(*deepagent.StreamEvent); ok {
//	        fmt.Print(e.Delta)
//	    }
//	}
//	final := stream.Workspace().Snapshot()
//
// # Sub-packages
//
//   - [tools] provides the built-in workspace tools (Ls, Read, Write, Edit,
//     Glob, TodoWrite) and the Task dispatch tool.
//   - [subagent] provides sub-agent definitions and the eager registry the
//     Task tool dispatches through.
package deepagent
