// Package source provides ready made byte sources for stencil tables:
// files (plain os or any afero filesystem), in-memory buffers and a shim
// for foreign io.ReadSeeker values. All types answer the capability
// queries (Readable/Seekable/Closed) that the stencil package demands
// from its sources.
package source
