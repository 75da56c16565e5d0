package audio_utils

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/mewkiz/flac"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// go-mp3 always decodes into 16-bit little endian stereo.
const mp3NumChannels = 2

// Decode reads a whole wav, flac or mp3 stream into memory.
func Decode(r io.ReadSeeker, fileExtension string) (*audio.IntBuffer, error) {
	switch strings.ToLower(strings.TrimPrefix(fileExtension, ".")) {
	case "wav":
		return decodeWav(r)
	case "flac":
		return decodeFlac(r)
	case "mp3":
		return decodeMp3(r)
	default:
		return nil, errors.Errorf("audio_utils: unsupported audio format %q", fileExtension)
	}
}

func decodeWav(r io.ReadSeeker) (*audio.IntBuffer, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, errors.New("audio_utils: not a valid wav file")
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "audio_utils: decoding wav failed")
	}
	if buf.SourceBitDepth == 0 {
		buf.SourceBitDepth = int(d.BitDepth)
	}
	return buf, nil
}

func decodeFlac(r io.Reader) (*audio.IntBuffer, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, errors.Wrap(err, "audio_utils: opening flac stream failed")
	}
	defer func() { dbg(stream.Close()) }()

	numChannels := int(stream.Info.NChannels)
	data := make([]int, 0, int(stream.Info.NSamples)*numChannels)
	for {
		f, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "audio_utils: parsing flac frame failed")
		}
		for i := 0; i < int(f.BlockSize); i++ {
			for _, subframe := range f.Subframes {
				data = append(data, int(subframe.Samples[i]))
			}
		}
	}
	return &audio.IntBuffer{
		Data: data,
		Format: &audio.Format{
			SampleRate:  int(stream.Info.SampleRate),
			NumChannels: numChannels,
		},
		SourceBitDepth: int(stream.Info.BitsPerSample),
	}, nil
}

func decodeMp3(r io.Reader) (*audio.IntBuffer, error) {
	decoded, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, errors.Wrap(err, "audio_utils: opening mp3 stream failed")
	}
	raw, err := io.ReadAll(decoded)
	if err != nil {
		return nil, errors.Wrap(err, "audio_utils: decoding mp3 failed")
	}
	return &audio.IntBuffer{
		Data: twoByteDataToIntSlice(raw),
		Format: &audio.Format{
			SampleRate:  decoded.SampleRate(),
			NumChannels: mp3NumChannels,
		},
		SourceBitDepth: OutputBitDepth,
	}, nil
}

// Prepared is an audio file ready to be sent for transcription.
type Prepared struct {
	WavBytes       []byte
	Duration       time.Duration
	SampleRate     int
	SourceChannels int
}

// PrepareForUpload decodes the file at path and re-encodes it as mono 16-bit wav.
func PrepareForUpload(fs afero.Fs, path string) (result Prepared, err error) {
	f, err := fs.Open(path)
	if err != nil {
		err = errors.Wrapf(err, "audio_utils: opening %s failed", path)
		return
	}
	defer func() { dbg(f.Close()) }()

	buf, err := Decode(f, filepath.Ext(path))
	if err != nil {
		err = errors.Wrapf(err, "audio_utils: decoding %s failed", path)
		return
	}
	if len(buf.Data) == 0 {
		err = errors.Errorf("audio_utils: %s contains no samples", path)
		return
	}

	wavBytes, err := ToMonoWav(buf)
	if err != nil {
		err = errors.Wrapf(err, "audio_utils: converting %s failed", path)
		return
	}
	result = Prepared{
		WavBytes:       wavBytes,
		Duration:       Duration(buf),
		SampleRate:     buf.Format.SampleRate,
		SourceChannels: buf.Format.NumChannels,
	}
	log.Debug().Str("path", path).Dur("duration", result.Duration).Int("sample_rate", result.SampleRate).Int("source_channels", result.SourceChannels).Int("wav_byte_size", len(wavBytes)).Msg("audio prepared for upload")
	return
}
