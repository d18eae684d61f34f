package pipeline

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hqplabs/idcard-ocr/constants"
	"github.com/hqplabs/idcard-ocr/internal/common"
	"github.com/hqplabs/idcard-ocr/internal/corpus"
	"github.com/hqplabs/idcard-ocr/internal/extract"
	"github.com/hqplabs/idcard-ocr/internal/metrics"
	"github.com/hqplabs/idcard-ocr/internal/ocr"
)

const frontText = `Government of India
DOB: 15/08/1992
Male
Rohit Sharma
1111 2222 3333`

const backText = `Address:
S/O Raj Sharma
12 Gandhi Road
Jaipur District
Rajasthan - 302001
VID : 9876 5432 1098 7654`

type fakeSource struct {
	err error
}

func (f fakeSource) Fetch(_ context.Context, _ string) (image.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

// fakeRecognizer returns canned texts in call order: front first, then back.
type fakeRecognizer struct {
	texts []string
	err   error
	calls int
}

func (f *fakeRecognizer) BestText(_ context.Context, _ image.Image, _ ocr.Hints) (string, int, error) {
	if f.err != nil {
		return "", 0, f.err
	}
	t := f.texts[f.calls]
	f.calls++
	return t, 0, nil
}

func (f *fakeRecognizer) RecognizeOnce(_ context.Context, _ image.Image, _ ocr.Hints) (string, error) {
	t, _, err := f.BestText(context.Background(), nil, ocr.Hints{})
	return t, err
}

func newTestProcessor(rec Recognizer, store corpus.Corpus, cfg Config) *Processor {
	m := metrics.NewWith(prometheus.NewRegistry())
	return NewProcessor(fakeSource{}, rec, extract.KeywordStrategy{}, store, m, cfg, nil)
}

func TestExtractAcceptsAndPersists(t *testing.T) {
	store := corpus.NewMemoryCorpus()
	p := newTestProcessor(&fakeRecognizer{texts: []string{frontText, backText}}, store,
		Config{RetryRotation: true})

	rec, rej, err := p.Extract(context.Background(), "front.jpg", "back.jpg", "user-1")
	require.NoError(t, err)
	require.Nil(t, rej)
	require.NotNil(t, rec)

	assert.Equal(t, "Rohit Sharma", rec.Name)
	assert.Equal(t, "15/08/1992", rec.DateOfBirth)
	assert.Equal(t, constants.GenderMale, rec.Gender)
	assert.Equal(t, "111122223333", rec.IDNumber)
	assert.Equal(t, "9876543210987654", rec.VIDNumber)
	assert.Equal(t, "302001", rec.PostalCode)
	assert.Contains(t, rec.Address, "Gandhi Road")
	assert.Equal(t, "user-1", rec.UserID)
	assert.False(t, rec.ExtractedAt.IsZero())

	all, err := store.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, rec.Equal(all[0]))
}

func TestExtractFrontOnly(t *testing.T) {
	store := corpus.NewMemoryCorpus()
	p := newTestProcessor(&fakeRecognizer{texts: []string{frontText}}, store,
		Config{RetryRotation: true})

	rec, rej, err := p.Extract(context.Background(), "front.jpg", "", "user-1")
	require.NoError(t, err)
	require.Nil(t, rej)
	require.NotNil(t, rec)
	assert.Equal(t, "111122223333", rec.IDNumber)
	assert.Empty(t, rec.VIDNumber)
}

func TestExtractDuplicateCarriesPrior(t *testing.T) {
	store := corpus.NewMemoryCorpus()
	p := newTestProcessor(&fakeRecognizer{texts: []string{frontText, backText}}, store,
		Config{RetryRotation: true})

	first, _, err := p.Extract(context.Background(), "front.jpg", "back.jpg", "user-1")
	require.NoError(t, err)
	require.NotNil(t, first)

	p.OCR = &fakeRecognizer{texts: []string{frontText, backText}}
	rec, rej, err := p.Extract(context.Background(), "front.jpg", "back.jpg", "user-2")
	require.NoError(t, err)
	assert.Nil(t, rec)
	require.NotNil(t, rej)
	assert.Equal(t, constants.ReasonAlreadyExists, rej.Reason)
	require.NotNil(t, rej.Prior)
	assert.Equal(t, "user-1", rej.Prior.UserID)

	all, err := store.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestExtractRejectsMissingEssentials(t *testing.T) {
	store := corpus.NewMemoryCorpus()
	p := newTestProcessor(&fakeRecognizer{texts: []string{"#### !!!!", "???? ::::"}}, store,
		Config{RetryRotation: true, OnMissingEssential: constants.PolicyReject})

	rec, rej, err := p.Extract(context.Background(), "front.jpg", "back.jpg", "user-1")
	require.NoError(t, err)
	assert.Nil(t, rec)
	require.NotNil(t, rej)
	assert.Equal(t, constants.ReasonEssentialFieldsMissing, rej.Reason)
	assert.ElementsMatch(t, []string{"id_number", "name"}, rej.MissingFields)
	assert.NotEmpty(t, rej.RawText)

	all, err := store.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestExtractPersistPartialKeepsIncompleteRecord(t *testing.T) {
	store := corpus.NewMemoryCorpus()
	p := newTestProcessor(&fakeRecognizer{texts: []string{"#### !!!!", "???? ::::"}}, store,
		Config{RetryRotation: true, OnMissingEssential: constants.PolicyPersistPartial})

	rec, rej, err := p.Extract(context.Background(), "front.jpg", "back.jpg", "user-1")
	require.NoError(t, err)
	assert.Nil(t, rej)
	require.NotNil(t, rec)
	assert.Empty(t, rec.IDNumber)

	all, err := store.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestExtractSourceFailureIsTerminal(t *testing.T) {
	p := newTestProcessor(&fakeRecognizer{}, corpus.NewMemoryCorpus(), Config{})
	p.Source = fakeSource{err: common.ErrUnreachableSource}

	rec, rej, err := p.Extract(context.Background(), "front.jpg", "", "user-1")
	assert.Nil(t, rec)
	assert.Nil(t, rej)
	assert.ErrorIs(t, err, common.ErrUnreachableSource)
}

func TestExtractOCRFailureIsTerminal(t *testing.T) {
	boom := errors.New("engine down")
	p := newTestProcessor(&fakeRecognizer{err: boom}, corpus.NewMemoryCorpus(),
		Config{RetryRotation: true})

	rec, rej, err := p.Extract(context.Background(), "front.jpg", "", "user-1")
	assert.Nil(t, rec)
	assert.Nil(t, rej)
	assert.ErrorIs(t, err, boom)
}

func TestAssembleDropsInvalidNumerics(t *testing.T) {
	rec := Assemble(extract.Fields{
		Name:       "Rohit Sharma",
		IDNumber:   "12345",
		VIDNumber:  "abc",
		PostalCode: "30200",
	}, "user-1", time.Now())

	assert.Empty(t, rec.IDNumber)
	assert.Empty(t, rec.VIDNumber)
	assert.Empty(t, rec.PostalCode)
	assert.Equal(t, "Rohit Sharma", rec.Name)
}
