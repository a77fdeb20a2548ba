package ftp

import (
	"bufio"
	"io"
)

// streamReader drains r in DataBlockMaxBody-sized chunks, sending each as
// a DataBlock to w. Peeking one byte past each read tells whether more
// data remains, so the EOF bit lands on the block containing the final
// chunk (§4.6) instead of trailing it in an empty block. Returns the
// number of payload bytes sent.
func streamReader(w io.Writer, r *bufio.Reader) (int64, error) {
	buf := make([]byte, DataBlockMaxBody)

	var total int64

	for {
		n, readErr := io.ReadFull(r, buf)
		if readErr != nil && readErr != io.ErrUnexpectedEOF && readErr != io.EOF {
			return total, readErr
		}

		_, peekErr := r.Peek(1)
		eof := peekErr != nil

		if n > 0 || eof {
			if err := SendDataBlock(w, DataBlock{EOF: eof, Payload: buf[:n]}); err != nil {
				return total, err
			}
			total += int64(n)
		}
		if eof {
			return total, nil
		}
	}
}
