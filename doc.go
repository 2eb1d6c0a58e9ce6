// Package texturegraph implements a real-time GPU texture filter
// graph: a directed graph of operation nodes, each performing one
// shader pass over N input textures and fanning the result out to its
// downstream targets.
//
// Inputs are accumulated per slot (only the most recent texture per
// slot participates); once every slot is filled the node submits
// exactly one draw to the rendering backend, purges transient inputs
// and forwards the freshly rendered texture downstream. Feedback
// cycles are seeded through a one-shot passthrough-bootstrap state
// which emits an unrendered placeholder frame.
package texturegraph
