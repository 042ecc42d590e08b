// Package io provides byte stream peripherals for the NES bus.
package io
