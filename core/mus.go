package core

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the domain types. They keep the
// XxxMUS.Size/Marshal/Unmarshal shape so storage code reads the same as
// generated serializers would.
var (
	IDMUS      = idMUS{}
	PhoneMUS   = phoneMUS{}
	EmailMUS   = emailMUS{}
	AddressMUS = addressMUS{}
	ContactMUS = contactMUS{}
	NoteMUS    = noteMUS{}
)

var (
	_ mus.Serializer[ID]      = IDMUS
	_ mus.Serializer[Phone]   = PhoneMUS
	_ mus.Serializer[Email]   = EmailMUS
	_ mus.Serializer[Address] = AddressMUS
	_ mus.Serializer[Contact] = ContactMUS
	_ mus.Serializer[Note]    = NoteMUS
)

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	return ID(num), n, err
}

func (idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

type phoneMUS struct{}

func (phoneMUS) Marshal(v Phone, bs []byte) (n int) {
	return ord.String.Marshal(v.value, bs)
}

// Unmarshal reconstructs a Phone without revalidation: persisted values
// were validated at construction.
func (phoneMUS) Unmarshal(bs []byte) (v Phone, n int, err error) {
	value, n, err := ord.String.Unmarshal(bs)
	return Phone{value: value}, n, err
}

func (phoneMUS) Size(v Phone) (size int) {
	return ord.String.Size(v.value)
}

func (phoneMUS) Skip(bs []byte) (n int, err error) {
	return ord.String.Skip(bs)
}

type emailMUS struct{}

func (emailMUS) Marshal(v Email, bs []byte) (n int) {
	return ord.String.Marshal(v.value, bs)
}

func (emailMUS) Unmarshal(bs []byte) (v Email, n int, err error) {
	value, n, err := ord.String.Unmarshal(bs)
	return Email{value: value}, n, err
}

func (emailMUS) Size(v Email) (size int) {
	return ord.String.Size(v.value)
}

func (emailMUS) Skip(bs []byte) (n int, err error) {
	return ord.String.Skip(bs)
}

type addressMUS struct{}

func (addressMUS) Marshal(v Address, bs []byte) (n int) {
	n = ord.String.Marshal(v.Street, bs)
	n += ord.String.Marshal(v.City, bs[n:])
	n += ord.String.Marshal(v.PostalCode, bs[n:])
	n += ord.String.Marshal(v.Country, bs[n:])
	return n
}

func (addressMUS) Unmarshal(bs []byte) (v Address, n int, err error) {
	var n1 int
	v.Street, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.City, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.PostalCode, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Country, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (addressMUS) Size(v Address) (size int) {
	size = ord.String.Size(v.Street)
	size += ord.String.Size(v.City)
	size += ord.String.Size(v.PostalCode)
	return size + ord.String.Size(v.Country)
}

func (s addressMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type contactMUS struct{}

func (contactMUS) Marshal(v Contact, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += varint.Int.Marshal(len(v.Phones), bs[n:])
	for _, p := range v.Phones {
		n += PhoneMUS.Marshal(p, bs[n:])
	}
	n += varint.Int.Marshal(len(v.Emails), bs[n:])
	for _, e := range v.Emails {
		n += EmailMUS.Marshal(e, bs[n:])
	}
	n += ord.Bool.Marshal(v.Birthday != nil, bs[n:])
	if v.Birthday != nil {
		n += varint.Int64.Marshal(v.Birthday.date.Unix(), bs[n:])
	}
	n += ord.Bool.Marshal(v.Address != nil, bs[n:])
	if v.Address != nil {
		n += AddressMUS.Marshal(*v.Address, bs[n:])
	}
	n += varint.Int64.Marshal(v.InsertedAt.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(v.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (contactMUS) Unmarshal(bs []byte) (v Contact, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	var length int
	length, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if length < 0 {
		err = fmt.Errorf("negative phone count %d", length)
		return
	}
	if length > 0 {
		v.Phones = make([]Phone, length)
		for i := range v.Phones {
			v.Phones[i], n1, err = PhoneMUS.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return
			}
		}
	}

	length, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if length < 0 {
		err = fmt.Errorf("negative email count %d", length)
		return
	}
	if length > 0 {
		v.Emails = make([]Email, length)
		for i := range v.Emails {
			v.Emails[i], n1, err = EmailMUS.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return
			}
		}
	}

	var present bool
	present, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if present {
		var sec int64
		sec, n1, err = varint.Int64.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		v.Birthday = &Birthday{date: time.Unix(sec, 0).UTC()}
	}

	present, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if present {
		var addr Address
		addr, n1, err = AddressMUS.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		v.Address = &addr
	}

	var micro int64
	micro, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt = time.UnixMicro(micro).UTC()

	micro, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt = time.UnixMicro(micro).UTC()
	return
}

func (contactMUS) Size(v Contact) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Name)
	size += varint.Int.Size(len(v.Phones))
	for _, p := range v.Phones {
		size += PhoneMUS.Size(p)
	}
	size += varint.Int.Size(len(v.Emails))
	for _, e := range v.Emails {
		size += EmailMUS.Size(e)
	}
	size += ord.Bool.Size(v.Birthday != nil)
	if v.Birthday != nil {
		size += varint.Int64.Size(v.Birthday.date.Unix())
	}
	size += ord.Bool.Size(v.Address != nil)
	if v.Address != nil {
		size += AddressMUS.Size(*v.Address)
	}
	size += varint.Int64.Size(v.InsertedAt.UnixMicro())
	return size + varint.Int64.Size(v.UpdatedAt.UnixMicro())
}

func (s contactMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type noteMUS struct{}

func (noteMUS) Marshal(v Note, bs []byte) (n int) {
	n = ord.String.Marshal(v.Title, bs)
	n += ord.String.Marshal(v.Body, bs[n:])
	n += varint.Int64.Marshal(v.InsertedAt.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(v.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (noteMUS) Unmarshal(bs []byte) (v Note, n int, err error) {
	var n1 int
	v.Title, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Body, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	var micro int64
	micro, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt = time.UnixMicro(micro).UTC()

	micro, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt = time.UnixMicro(micro).UTC()
	return
}

func (noteMUS) Size(v Note) (size int) {
	size = ord.String.Size(v.Title)
	size += ord.String.Size(v.Body)
	size += varint.Int64.Size(v.InsertedAt.UnixMicro())
	return size + varint.Int64.Size(v.UpdatedAt.UnixMicro())
}

func (s noteMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}
