// Package rules owns the taming rule set: the INI rule file format, the
// CRC-32 change gate that decides when the file is reparsed, and the store
// that publishes immutable rule set snapshots to the enforcement loop.
//
// A rule maps a process image name to a target nice value. The store holds
// at most one current snapshot; Refresh replaces it wholesale when the file
// content digest changes and leaves it untouched on read or parse failures,
// so a half-edited rule file never wipes out a working configuration.
package rules
