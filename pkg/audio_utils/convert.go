package audio_utils

import (
	"encoding/binary"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// OutputBitDepth is what we upload, 16-bit signed PCM.
const OutputBitDepth = 16

// wavFormatPCM is the WAVE_FORMAT_PCM audio format tag.
const wavFormatPCM = 1

func dbg(err error) {
	if err != nil {
		log.Debug().Err(err).Msg("sth non-essential failed")
	}
}

// ToMonoWav down-mixes buf by averaging its channels and encodes it as 16-bit PCM wav.
func ToMonoWav(buf *audio.IntBuffer) (result []byte, err error) {
	if buf == nil || buf.Format == nil || len(buf.Data) == 0 {
		err = errors.New("audio_utils: nothing to encode")
		return
	}
	mono := &audio.IntBuffer{
		Data:           downmix(scaleTo16Bit(buf.Data, buf.SourceBitDepth), buf.Format.NumChannels),
		Format:         &audio.Format{SampleRate: buf.Format.SampleRate, NumChannels: 1},
		SourceBitDepth: OutputBitDepth,
	}
	return encodeWav(mono)
}

func encodeWav(inputBuffer *audio.IntBuffer) (result []byte, err error) {
	// The wav encoder needs an io.WriteSeeker to finalize headers, hence the in-memory file.
	fs := afero.NewMemMapFs()
	inMemoryFilename := "in-memory-output.wav"
	inMemoryFile, err := fs.Create(inMemoryFilename)
	if err != nil {
		err = errors.Wrap(err, "audio_utils: creating in-memory file failed")
		return
	}

	sampleRate := inputBuffer.Format.SampleRate
	numChannels := inputBuffer.Format.NumChannels
	wavEncoder := wav.NewEncoder(inMemoryFile, sampleRate, OutputBitDepth, numChannels, wavFormatPCM)
	log.Trace().Int("int_data_length", len(inputBuffer.Data)).Int("sample_rate", sampleRate).Int("num_channels", numChannels).Msg("encoding int samples as a wav")
	if err = wavEncoder.Write(inputBuffer); err != nil {
		err = errors.Wrap(err, "audio_utils: encoding samples as wav failed")
		return
	}
	if err = wavEncoder.Close(); err != nil {
		err = errors.Wrap(err, "audio_utils: finishing wav encoding failed")
		return
	}

	// Close and re-open so we read the finalized headers too.
	dbg(inMemoryFile.Close())
	result, err = afero.ReadFile(fs, inMemoryFilename)
	if err != nil {
		err = errors.Wrap(err, "audio_utils: reading in-memory wav failed")
		return
	}
	if len(result) == 0 {
		err = errors.New("audio_utils: wav output is empty when input was not")
	}
	return
}

// Duration is the playback length of buf.
func Duration(buf *audio.IntBuffer) time.Duration {
	if buf == nil || buf.Format == nil || buf.Format.SampleRate <= 0 || buf.Format.NumChannels <= 0 {
		return 0
	}
	frames := len(buf.Data) / buf.Format.NumChannels
	return time.Duration(frames) * time.Second / time.Duration(buf.Format.SampleRate)
}

func downmix(data []int, numChannels int) []int {
	if numChannels <= 1 {
		return data
	}
	result := make([]int, len(data)/numChannels)
	for i := range result {
		sum := 0
		for ch := 0; ch < numChannels; ch++ {
			sum += data[i*numChannels+ch]
		}
		result[i] = sum / numChannels
	}
	return result
}

// scaleTo16Bit maps samples of the given depth onto the signed 16-bit range.
// 8-bit wav samples are unsigned and centered at 128.
func scaleTo16Bit(data []int, bitDepth int) []int {
	if bitDepth == OutputBitDepth || bitDepth == 0 {
		return data
	}
	result := make([]int, len(data))
	for i, v := range data {
		switch {
		case bitDepth == 8:
			result[i] = (v - 128) << 8
		case bitDepth > OutputBitDepth:
			result[i] = v >> (bitDepth - OutputBitDepth)
		default:
			result[i] = v << (OutputBitDepth - bitDepth)
		}
	}
	return result
}

func twoByteDataToIntSlice(audioData []byte) []int {
	intData := make([]int, len(audioData)/2)
	for i := 0; i+1 < len(audioData); i += 2 {
		intData[i/2] = int(int16(binary.LittleEndian.Uint16(audioData[i : i+2])))
	}
	return intData
}
