package contact

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedNormalizesAndDirties(t *testing.T) {
	c := Named("  george  BUSH  ")
	assert.Equal(t, "George Bush", c.Name)
	assert.Zero(t, c.Key)
	assert.Zero(t, c.HashKey)
	assert.Equal(t, "Contact='George Bush'", c.Description())
}

func TestContactBrief(t *testing.T) {
	c := Named("George Bush")
	c.Key = 17
	brief := c.Brief()
	assert.Equal(t, int64(17), brief.Key)
	assert.Equal(t, "name=George Bush", brief.Type)
}

func TestCountBrief(t *testing.T) {
	brief := CountBrief(12)
	assert.Equal(t, int64(12), brief.Key)
	assert.Equal(t, "Contact.count", brief.Type)
	assert.Equal(t, "Contact.count = 12", brief.String())
}

func TestContactSubMaps(t *testing.T) {
	c := Named("Jane Doe")
	phone, _ := ParsePhone("415-555-1234")

	c.WithPhone(KindHome, phone)
	assert.Same(t, phone, c.Phone(KindHome))
	assert.Nil(t, c.Phone(KindWork))

	c.RemovePhone(KindHome)
	assert.Nil(t, c.Phone(KindHome))

	// removing from an empty map is a no-op
	c.RemoveEmail(KindWork)
	assert.Nil(t, c.Email(KindWork))
}

func TestContactMechanismsOrder(t *testing.T) {
	c := Named("Jane Doe")
	phone, _ := ParsePhone("415-555-1234")
	email, _ := ParseEmail("jane@example.com")
	address := NewMailAddress("1234 Main St", "", "Los Angeles", "CA", "90066")

	c.WithPhone(KindWork, phone)
	c.WithEmail(KindHome, email)
	c.WithAddress(KindHome, address)

	mechanisms := c.Mechanisms()
	require.Len(t, mechanisms, 3)
	assert.IsType(t, &MailAddress{}, mechanisms[0].Mechanism)
	assert.IsType(t, &PhoneNumber{}, mechanisms[1].Mechanism)
	assert.IsType(t, &EmailAddress{}, mechanisms[2].Mechanism)
}

func TestMergePhone(t *testing.T) {
	c := Named("Jane Doe")
	messages := []string{}

	c.MergePhone(KindHome, "415-555-1234", &messages)
	assert.Empty(t, messages)
	require.NotNil(t, c.Phone(KindHome))
	assert.Equal(t, "415-555-1234", c.Phone(KindHome).FormatNumber())

	// same value is a no-op, keeping the installed instance
	installed := c.Phone(KindHome)
	c.MergePhone(KindHome, "415-555-1234", &messages)
	assert.Same(t, installed, c.Phone(KindHome))
	assert.Empty(t, messages)

	// invalid text reports and leaves the slot alone
	c.MergePhone(KindHome, "bogus", &messages)
	require.Len(t, messages, 1)
	assert.Equal(t, "HOME "+PhoneFormatMessage, messages[0])
	assert.Same(t, installed, c.Phone(KindHome))

	// empty text clears the slot
	c.MergePhone(KindHome, "", &messages)
	assert.Nil(t, c.Phone(KindHome))
}

func TestMergeEmailAndAddress(t *testing.T) {
	c := Named("Jane Doe")
	messages := []string{}

	c.MergeEmail(KindWork, "jane@example.com", &messages)
	require.NotNil(t, c.Email(KindWork))

	c.MergeAddress(KindHome, "1234 Main St, Los Angeles, CA 90066", &messages)
	require.NotNil(t, c.Address(KindHome))
	assert.Empty(t, messages)

	c.MergeAddress(KindWork, "nowhere", &messages)
	require.Len(t, messages, 1)
	assert.Equal(t, "WORK "+MailFormatMessage, messages[0])
	assert.Nil(t, c.Address(KindWork))
}

func TestContactJSONRoundTrip(t *testing.T) {
	c := Named("Jane Doe")
	c.Key = 21
	phone, _ := ParsePhone("415-555-1234")
	phone.Key = 31
	email, _ := ParseEmail("jane@example.com")
	address := NewMailAddress("1234 Main St", "", "Los Angeles", "CA", "90066")
	c.WithPhone(KindHome, phone)
	c.WithEmail(KindWork, email)
	c.WithAddress(KindHome, address)

	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded Contact
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, int64(21), decoded.Key)
	assert.Zero(t, decoded.HashKey)
	assert.Equal(t, "Jane Doe", decoded.Name)

	require.NotNil(t, decoded.Phone(KindHome))
	assert.Equal(t, int64(31), decoded.Phone(KindHome).Key)
	assert.Equal(t, "415-555-1234", decoded.Phone(KindHome).FormatNumber())

	require.NotNil(t, decoded.Email(KindWork))
	assert.Equal(t, "jane@example.com", decoded.Email(KindWork).FormatAddress())

	require.NotNil(t, decoded.Address(KindHome))
	assert.Equal(t, address.FormatAddress(), decoded.Address(KindHome).FormatAddress())
}

func TestMechanismPayloadSniffing(t *testing.T) {
	var m ContactMechanism

	require.NoError(t, json.Unmarshal([]byte(`{"type":"HOME","mechanism":{"key":0,"value":"415-555-1234"}}`), &m))
	assert.IsType(t, &PhoneNumber{}, m.Mechanism)
	assert.Equal(t, KindHome, m.Type)

	require.NoError(t, json.Unmarshal([]byte(`{"type":"WORK","mechanism":{"key":0,"value":"jane@example.com"}}`), &m))
	assert.IsType(t, &EmailAddress{}, m.Mechanism)

	payload := `{"type":"HOME","mechanism":{"key":0,"street":"1234 Main St","office":"","city":"Los Angeles","state":"CA","zip":"90066"}}`
	require.NoError(t, json.Unmarshal([]byte(payload), &m))
	assert.IsType(t, &MailAddress{}, m.Mechanism)

	assert.Error(t, json.Unmarshal([]byte(`{"type":"HOME","mechanism":{}}`), &m))
	assert.Error(t, json.Unmarshal([]byte(`{"type":"NOWHERE","mechanism":{"value":"415-555-1234"}}`), &m))
}

func TestItemPart(t *testing.T) {
	part := NewPart("Jane Doe", IDPhone, KindHome, "415-555-1234")
	assert.NoError(t, part.Validate())

	partType, err := part.PartType()
	require.NoError(t, err)
	assert.Equal(t, IDPhone, partType)

	kind, err := part.Kind()
	require.NoError(t, err)
	assert.Equal(t, KindHome, kind)
	assert.Equal(t, "415-555-1234", part.Value())

	namePart := NewContactPart("Jane Doe")
	assert.NoError(t, namePart.Validate())
	partType, err = namePart.PartType()
	require.NoError(t, err)
	assert.Equal(t, IDName, partType)
	_, err = namePart.Kind()
	assert.ErrorIs(t, err, ErrInvalidPart)
	assert.Empty(t, namePart.Value())

	assert.Error(t, ItemPart{Name: "x", Description: []string{"name"}}.Validate())
	assert.Error(t, ItemPart{Name: "Jane Doe"}.Validate())
}

func TestParseKindAndIDType(t *testing.T) {
	kind, err := ParseKind("SHIPPING")
	require.NoError(t, err)
	assert.Equal(t, KindShipping, kind)
	_, err = ParseKind("OTHER")
	assert.Error(t, err)

	idType, err := ParseIDType("mail")
	require.NoError(t, err)
	assert.Equal(t, IDMail, idType)
	_, err = ParseIDType("fax")
	assert.Error(t, err)
}
