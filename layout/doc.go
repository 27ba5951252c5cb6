// Package layout describes the on-wire structure of a program input buffer.
//
// A full account record is laid out as:
//
//	Field              Offset  Size
//	──────────────────────────────────────
//	duplicate marker   0       1
//	is_signer          1       1
//	is_writable        2       1
//	executable         3       1
//	original_data_len  4       4
//	key                8       32
//	owner              40      32
//	lamports           72      8
//	data_len           80      8
//	data               88      data_len
//	growth reserve     -       MaxPermittedDataIncrease
//	alignment pad      -       0..7
//	rent_epoch         -       8
//
// A duplicate record is the marker byte (an earlier account's index)
// padded to Alignment.
//
// Offsets are running sums of the field widths and are the single source
// of truth for the encoder and decoder alike.
package layout
