package core

import (
	"errors"
	"time"

	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for every type persisted in the storage backend.
// Field order is part of the storage format; append new fields at the end.
var (
	IDMUS           = idMUS{}
	VerseMUS        = verseMUS{}
	ChatMessageMUS  = chatMessageMUS{}
	SearchRecordMUS = searchRecordMUS{}
)

var errTruncated = errors.New("truncated serialized data")

// -- primitives ------------------------------------------------------------

func marshalString(s string, bs []byte) (n int) {
	n = varint.Int.Marshal(len(s), bs)
	n += copy(bs[n:], s)
	return
}

func unmarshalString(bs []byte) (s string, n int, err error) {
	l, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return "", n, err
	}
	if l < 0 || n+l > len(bs) {
		return "", n, errTruncated
	}
	return string(bs[n : n+l]), n + l, nil
}

func sizeString(s string) int {
	return varint.Int.Size(len(s)) + len(s)
}

func marshalBool(b bool, bs []byte) int {
	v := 0
	if b {
		v = 1
	}
	return varint.Int.Marshal(v, bs)
}

func unmarshalBool(bs []byte) (bool, int, error) {
	v, n, err := varint.Int.Unmarshal(bs)
	return v != 0, n, err
}

func sizeBool(bool) int { return 1 }

func marshalStringPtr(p *string, bs []byte) (n int) {
	if p == nil {
		return marshalBool(false, bs)
	}
	n = marshalBool(true, bs)
	n += marshalString(*p, bs[n:])
	return
}

func unmarshalStringPtr(bs []byte) (p *string, n int, err error) {
	present, n, err := unmarshalBool(bs)
	if err != nil || !present {
		return nil, n, err
	}
	s, n2, err := unmarshalString(bs[n:])
	if err != nil {
		return nil, n + n2, err
	}
	return &s, n + n2, nil
}

func sizeStringPtr(p *string) int {
	if p == nil {
		return 1
	}
	return 1 + sizeString(*p)
}

func marshalVector(v []float32, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, f := range v {
		n += varint.Float32.Marshal(f, bs[n:])
	}
	return
}

func unmarshalVector(bs []byte) (v []float32, n int, err error) {
	l, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if l < 0 {
		return nil, n, errTruncated
	}
	if l == 0 {
		return nil, n, nil
	}
	v = make([]float32, l)
	for i := 0; i < l; i++ {
		f, n2, err := varint.Float32.Unmarshal(bs[n:])
		if err != nil {
			return nil, n + n2, err
		}
		v[i] = f
		n += n2
	}
	return v, n, nil
}

func sizeVector(v []float32) (size int) {
	size = varint.Int.Size(len(v))
	for _, f := range v {
		size += varint.Float32.Size(f)
	}
	return
}

func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	us, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(us).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

// -- ID --------------------------------------------------------------------

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (s idMUS) Skip(bs []byte) (int, error) {
	_, n, err := s.Unmarshal(bs)
	return n, err
}

// -- Verse -----------------------------------------------------------------

type verseMUS struct{}

func (verseMUS) Marshal(v Verse, bs []byte) (n int) {
	n = varint.Int.Marshal(v.Number, bs)
	n += varint.Int.Marshal(v.Chapter, bs[n:])
	n += marshalString(v.ChapterName, bs[n:])
	n += marshalString(v.SectionName, bs[n:])
	n += marshalString(v.Tamil, bs[n:])
	n += marshalString(v.English, bs[n:])
	n += marshalStringPtr(v.TamilExplanation, bs[n:])
	n += marshalStringPtr(v.EnglishExplanation, bs[n:])
	n += marshalVector(v.Vector, bs[n:])
	n += marshalBool(v.Placeholder, bs[n:])
	return
}

func (verseMUS) Unmarshal(bs []byte) (v Verse, n int, err error) {
	var n2 int
	if v.Number, n, err = varint.Int.Unmarshal(bs); err != nil {
		return
	}
	if v.Chapter, n2, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n2, err
	}
	n += n2
	if v.ChapterName, n2, err = unmarshalString(bs[n:]); err != nil {
		return v, n + n2, err
	}
	n += n2
	if v.SectionName, n2, err = unmarshalString(bs[n:]); err != nil {
		return v, n + n2, err
	}
	n += n2
	if v.Tamil, n2, err = unmarshalString(bs[n:]); err != nil {
		return v, n + n2, err
	}
	n += n2
	if v.English, n2, err = unmarshalString(bs[n:]); err != nil {
		return v, n + n2, err
	}
	n += n2
	if v.TamilExplanation, n2, err = unmarshalStringPtr(bs[n:]); err != nil {
		return v, n + n2, err
	}
	n += n2
	if v.EnglishExplanation, n2, err = unmarshalStringPtr(bs[n:]); err != nil {
		return v, n + n2, err
	}
	n += n2
	if v.Vector, n2, err = unmarshalVector(bs[n:]); err != nil {
		return v, n + n2, err
	}
	n += n2
	if v.Placeholder, n2, err = unmarshalBool(bs[n:]); err != nil {
		return v, n + n2, err
	}
	return v, n + n2, nil
}

func (verseMUS) Size(v Verse) int {
	return varint.Int.Size(v.Number) +
		varint.Int.Size(v.Chapter) +
		sizeString(v.ChapterName) +
		sizeString(v.SectionName) +
		sizeString(v.Tamil) +
		sizeString(v.English) +
		sizeStringPtr(v.TamilExplanation) +
		sizeStringPtr(v.EnglishExplanation) +
		sizeVector(v.Vector) +
		sizeBool(v.Placeholder)
}

func (s verseMUS) Skip(bs []byte) (int, error) {
	_, n, err := s.Unmarshal(bs)
	return n, err
}

// -- References ------------------------------------------------------------

func marshalReferences(r *References, bs []byte) (n int) {
	if r == nil {
		return marshalBool(false, bs)
	}
	n = marshalBool(true, bs)
	n += varint.Int.Marshal(len(r.VerseNumbers), bs[n:])
	for _, v := range r.VerseNumbers {
		n += varint.Int.Marshal(v, bs[n:])
	}
	n += varint.Int.Marshal(len(r.ChapterNumbers), bs[n:])
	for _, c := range r.ChapterNumbers {
		n += varint.Int.Marshal(c, bs[n:])
	}
	return
}

func unmarshalReferences(bs []byte) (r *References, n int, err error) {
	present, n, err := unmarshalBool(bs)
	if err != nil || !present {
		return nil, n, err
	}
	r = &References{}
	var n2 int
	if r.VerseNumbers, n2, err = unmarshalIntSlice(bs[n:]); err != nil {
		return nil, n + n2, err
	}
	n += n2
	if r.ChapterNumbers, n2, err = unmarshalIntSlice(bs[n:]); err != nil {
		return nil, n + n2, err
	}
	return r, n + n2, nil
}

func unmarshalIntSlice(bs []byte) (vs []int, n int, err error) {
	l, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if l < 0 {
		return nil, n, errTruncated
	}
	vs = make([]int, 0, l)
	for i := 0; i < l; i++ {
		v, n2, err := varint.Int.Unmarshal(bs[n:])
		if err != nil {
			return nil, n + n2, err
		}
		vs = append(vs, v)
		n += n2
	}
	return vs, n, nil
}

func sizeReferences(r *References) (size int) {
	if r == nil {
		return 1
	}
	size = 1 + varint.Int.Size(len(r.VerseNumbers))
	for _, v := range r.VerseNumbers {
		size += varint.Int.Size(v)
	}
	size += varint.Int.Size(len(r.ChapterNumbers))
	for _, c := range r.ChapterNumbers {
		size += varint.Int.Size(c)
	}
	return
}

// -- ChatMessage -----------------------------------------------------------

type chatMessageMUS struct{}

func (chatMessageMUS) Marshal(m ChatMessage, bs []byte) (n int) {
	n = IDMUS.Marshal(m.Id, bs)
	n += marshalString(m.SessionID, bs[n:])
	n += marshalBool(m.FromUser, bs[n:])
	n += marshalString(m.Message, bs[n:])
	n += marshalTime(m.Timestamp, bs[n:])
	n += marshalReferences(m.References, bs[n:])
	return
}

func (chatMessageMUS) Unmarshal(bs []byte) (m ChatMessage, n int, err error) {
	var n2 int
	if m.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if m.SessionID, n2, err = unmarshalString(bs[n:]); err != nil {
		return m, n + n2, err
	}
	n += n2
	if m.FromUser, n2, err = unmarshalBool(bs[n:]); err != nil {
		return m, n + n2, err
	}
	n += n2
	if m.Message, n2, err = unmarshalString(bs[n:]); err != nil {
		return m, n + n2, err
	}
	n += n2
	if m.Timestamp, n2, err = unmarshalTime(bs[n:]); err != nil {
		return m, n + n2, err
	}
	n += n2
	if m.References, n2, err = unmarshalReferences(bs[n:]); err != nil {
		return m, n + n2, err
	}
	return m, n + n2, nil
}

func (chatMessageMUS) Size(m ChatMessage) int {
	return IDMUS.Size(m.Id) +
		sizeString(m.SessionID) +
		sizeBool(m.FromUser) +
		sizeString(m.Message) +
		sizeTime(m.Timestamp) +
		sizeReferences(m.References)
}

func (s chatMessageMUS) Skip(bs []byte) (int, error) {
	_, n, err := s.Unmarshal(bs)
	return n, err
}

// -- SearchRecord ----------------------------------------------------------

type searchRecordMUS struct{}

func (searchRecordMUS) Marshal(r SearchRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(r.Id, bs)
	n += marshalString(r.SessionID, bs[n:])
	n += marshalString(r.Query, bs[n:])
	n += varint.Int.Marshal(len(r.Results), bs[n:])
	for _, ref := range r.Results {
		n += varint.Int.Marshal(ref.Number, bs[n:])
		n += varint.Float32.Marshal(ref.Score, bs[n:])
		n += varint.Float32.Marshal(ref.Relevance, bs[n:])
		n += marshalBool(ref.Fallback, bs[n:])
	}
	n += marshalTime(r.Timestamp, bs[n:])
	return
}

func (searchRecordMUS) Unmarshal(bs []byte) (r SearchRecord, n int, err error) {
	var n2 int
	if r.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if r.SessionID, n2, err = unmarshalString(bs[n:]); err != nil {
		return r, n + n2, err
	}
	n += n2
	if r.Query, n2, err = unmarshalString(bs[n:]); err != nil {
		return r, n + n2, err
	}
	n += n2
	var count int
	if count, n2, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return r, n + n2, err
	}
	n += n2
	if count < 0 {
		return r, n, errTruncated
	}
	if count > 0 {
		r.Results = make([]ResultRef, 0, count)
	}
	for i := 0; i < count; i++ {
		var ref ResultRef
		if ref.Number, n2, err = varint.Int.Unmarshal(bs[n:]); err != nil {
			return r, n + n2, err
		}
		n += n2
		if ref.Score, n2, err = varint.Float32.Unmarshal(bs[n:]); err != nil {
			return r, n + n2, err
		}
		n += n2
		if ref.Relevance, n2, err = varint.Float32.Unmarshal(bs[n:]); err != nil {
			return r, n + n2, err
		}
		n += n2
		if ref.Fallback, n2, err = unmarshalBool(bs[n:]); err != nil {
			return r, n + n2, err
		}
		n += n2
		r.Results = append(r.Results, ref)
	}
	if r.Timestamp, n2, err = unmarshalTime(bs[n:]); err != nil {
		return r, n + n2, err
	}
	return r, n + n2, nil
}

func (searchRecordMUS) Size(r SearchRecord) (size int) {
	size = IDMUS.Size(r.Id) +
		sizeString(r.SessionID) +
		sizeString(r.Query) +
		varint.Int.Size(len(r.Results))
	for _, ref := range r.Results {
		size += varint.Int.Size(ref.Number) +
			varint.Float32.Size(ref.Score) +
			varint.Float32.Size(ref.Relevance) +
			sizeBool(ref.Fallback)
	}
	size += sizeTime(r.Timestamp)
	return
}

func (s searchRecordMUS) Skip(bs []byte) (int, error) {
	_, n, err := s.Unmarshal(bs)
	return n, err
}
