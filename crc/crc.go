// SPDX-License-Identifier: GPL-2.0-or-later

// Package crc implements table driven 16 bit CRCs, most significant bit
// first. Mesh files are checked with CRC-16/CCITT-FALSE.
package crc

const (
	// CCITT is the polynomial x^16 + x^12 + x^5 + 1.
	CCITT = 0x1021
	// Initial is the start value of CRC-16/CCITT-FALSE.
	Initial = 0xffff
)

type Table [256]uint16

var ccittTable = MakeTable(CCITT)

func MakeTable(poly uint16) *Table {
	t := new(Table)
	for i := range t {
		crc := uint16(i) << 8
		for j := 0; j < 8; j++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return t
}

// Update continues crc with the bytes of p.
func Update(crc uint16, tab *Table, p []byte) uint16 {
	for _, v := range p {
		crc = tab[byte(crc>>8)^v] ^ (crc << 8)
	}
	return crc
}

// Checksum returns the CRC-16/CCITT-FALSE of p.
func Checksum(p []byte) uint16 {
	return Update(Initial, ccittTable, p)
}
