// Package alloc finds free instance identifiers.
//
// An identifier lives in a single numbering space shared by two unrelated
// registries: guest configuration records and storage volume names. An id
// that looks free in one registry can still be reserved in the other, so
// both are consulted before an id is handed out. Volume names reserve every
// number that appears in them as a separator-bounded token, which keeps id
// 10 from colliding with a volume named vm-110-disk-0.
package alloc
