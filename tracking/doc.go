// Package tracking turns camera frames into controller positions.
//
// Each frame is reduced to two column profiles, one per half. During
// calibration the profiles of an empty scene become the background and a
// noise threshold is measured. At runtime every live profile is compared
// against its background and the strongest run of changed columns is
// reported as that half's controller position, in window pixels.
//
// The top half of the frame drives player 0, the bottom half player 1.
package tracking
