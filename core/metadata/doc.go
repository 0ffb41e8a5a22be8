// Package metadata records the provenance of downloaded source files and
// generated inventory artifacts: source URL, version, acquisition time, the
// tool version that produced each file, and a run identifier. Descriptors are
// persisted as indented JSON next to the artifacts they describe.
package metadata
