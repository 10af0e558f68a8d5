// Package util holds small generic helpers shared by restkit packages.
package util
