// Package platform identifies the operating system the installer runs on.
//
// ID is a closed enumeration. Every known value maps to Traits, which hold
// the release asset substring, the installed file suffix and whether the
// installed file needs executable permission bits.
package platform
