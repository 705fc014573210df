package services

import (
	"io"
	"mime/multipart"
	"net/http"

	tcmp3 "github.com/tcolgate/mp3"
)

// GetMP3DurationFromURL downloads an MP3 and returns its duration in seconds.
func GetMP3DurationFromURL(url string) (float64, error) {
	resp, err := http.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return mp3Duration(resp.Body)
}

// GetMP3DurationFromUpload measures an uploaded MP3 without persisting it,
// used to fill Episode.DurationSec before the timeline is validated against
// it.
func GetMP3DurationFromUpload(fileHeader *multipart.FileHeader) (float64, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return mp3Duration(file)
}

func mp3Duration(r io.Reader) (float64, error) {
	var (
		dur     float64
		dec     = tcmp3.NewDecoder(r)
		frame   tcmp3.Frame
		skipped int
	)

	for {
		if err := dec.Decode(&frame, &skipped); err != nil {
			if err == io.EOF {
				break
			}
			return 0, err
		}
		dur += frame.Duration().Seconds()
	}

	return dur, nil
}
