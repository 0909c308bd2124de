package export

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/race-ledger/internal/standings"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = params
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func testSet() standings.SeriesSet {
	return standings.SeriesSet{
		{Name: "Alice", Samples: []standings.Sample{{Round: 1, Label: "R1", Points: 25}, {Round: 2, Label: "R2", Points: 43}}},
		{Name: "Bob", Samples: []standings.Sample{{Round: 1, Label: "R1", Points: 0}, {Round: 2, Label: "R2", Points: 25}}},
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestWriteFileCSV(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "drivers.csv")

	require.NoError(t, WriteFile(filename, testSet(), FormatCSV))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "label,Alice,Bob\nR1,25,0\nR2,43,25\n", string(data))
}

func TestPublishUploadsObject(t *testing.T) {
	putter := &fakePutter{}
	p := NewS3PublisherWithClient(putter, "charts", "standings", quietLogger())

	key, err := p.Publish(context.Background(), "league-1", "drivers", testSet(), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "standings/league-1/drivers.json", key)
	require.NotNil(t, putter.input)
	assert.Equal(t, "charts", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "application/json", aws.ToString(putter.input.ContentType))
	expected, err := testSet().ToJSON()
	require.NoError(t, err)
	assert.JSONEq(t, string(expected), string(putter.body))
}

func TestPublishFailure(t *testing.T) {
	putter := &fakePutter{err: errors.New("access denied")}
	p := NewS3PublisherWithClient(putter, "charts", "", quietLogger())

	_, err := p.Publish(context.Background(), "league-1", "teams", testSet(), FormatCSV)
	assert.ErrorContains(t, err, "access denied")
}
