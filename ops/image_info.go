package ops

import (
	"github.com/cubespace-aero/go-tctlm/endpoint"
	"github.com/cubespace-aero/go-tctlm/errcode"
)

// walkImageInfo resets the device's image-info walk cursor and reads
// entries one at a time, making up to imageInfoRetries attempts per entry
// with imageInfoBackoff between attempts whenever the device reports
// TCTLM_BUSY. Reading stops when an entry reports last==true, isValid is
// false, or visit returns false to stop early.
func (c *Client) walkImageInfo(ep endpoint.Endpoint, visit func(ImageFileInfo) bool) error {
	const op = "ops.walkImageInfo"

	if _, err := c.t.SendReceive(ep, idInfoReset, []byte{infoReset}); err != nil {
		return err
	}

	for {
		entry, err := c.readImageFileInfoWithRetry(ep)
		if err != nil {
			return err
		}
		if !entry.Valid {
			return nil
		}
		if !visit(entry) {
			return nil
		}
		if entry.Last {
			return nil
		}
	}
}

func (c *Client) readImageFileInfoWithRetry(ep endpoint.Endpoint) (ImageFileInfo, error) {
	for attempt := 0; ; attempt++ {
		resp, err := c.t.SendReceive(ep, idImageFileInfo, nil)
		if err == nil {
			return decodeImageFileInfo(resp)
		}
		if !errcode.Is(err, errcode.TCTLMBusy) || attempt >= imageInfoRetries-1 {
			return ImageFileInfo{}, err
		}
		c.clock.DelayMS(uint32(imageInfoBackoff.Milliseconds()))
	}
}

// GetImageInfoFirstLast returns the entries at the start and end of the
// image-info walk (those whose First or Last field is set).
func (c *Client) GetImageInfoFirstLast(ep endpoint.Endpoint) (first, last ImageFileInfo, err error) {
	var foundFirst, foundLast bool
	err = c.walkImageInfo(ep, func(entry ImageFileInfo) bool {
		if entry.First {
			first, foundFirst = entry, true
		}
		if entry.Last {
			last, foundLast = entry, true
		}
		return !(foundFirst && foundLast)
	})
	if err != nil {
		return ImageFileInfo{}, ImageFileInfo{}, err
	}
	return first, last, nil
}

// GetImageInfo returns the walk entry matching fileHandle, or an EXIST
// error if the walk completes without finding one.
func (c *Client) GetImageInfo(ep endpoint.Endpoint, fileHandle uint32) (ImageFileInfo, error) {
	const op = "ops.GetImageInfo"

	var found ImageFileInfo
	var ok bool
	err := c.walkImageInfo(ep, func(entry ImageFileInfo) bool {
		if entry.FileHandle == fileHandle {
			found, ok = entry, true
			return false
		}
		return true
	})
	if err != nil {
		return ImageFileInfo{}, err
	}
	if !ok {
		return ImageFileInfo{}, errcode.New(op, errcode.EXIST)
	}
	return found, nil
}
