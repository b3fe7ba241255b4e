// Package verify provides region-level invariant checks for the object
// format protocol. These helpers confirm that a format's Skip and Pad
// operations uphold the walkability contract: any live region can be
// traversed end to end with no gaps and no overlaps.
package verify
