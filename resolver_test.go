package arkresolver_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	arkresolver "github.com/dasch-swiss/ark-resolver"
	"github.com/dasch-swiss/ark-resolver/resolver"
	"github.com/dasch-swiss/ark-resolver/settings"
)

func newTestResolver(t *testing.T, opts ...arkresolver.Option) *arkresolver.Resolver {
	t.Helper()

	registry, err := settings.LoadRegistry(context.Background(), "testdata/ark-registry.yaml")
	require.NoError(t, err)

	cfg := &settings.Config{
		ExternalHost: "ark.example.org",
		InternalHost: "0.0.0.0",
		InternalPort: 3336,
		NAAN:         "00000",
		HTTPSProxy:   true,
		ARKVersion:   1,
		RedisTTL:     time.Hour,
	}

	s, err := settings.New(cfg, registry)
	require.NoError(t, err)

	r, err := arkresolver.New(s, opts...)
	require.NoError(t, err)
	return r
}

func TestResolverRedirects(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name string
		ark  string
		want string
	}{
		{"top level", "ark:/00000/1", "http://dasch.swiss"},
		{"project", "ark:/00000/1/0003", "http://meta.dasch.swiss/projects/0003"},
		{"resource", "ark:/00000/1/0001/cmfk1DMHRBiR4=_6HXpEFAn", "http://app.dasch.swiss/resource/0001/cmfk1DMHRBiR4-_6HXpEFA"},
		{"resource with version", "ark:/00000/1/0001/cmfk1DMHRBiR4=_6HXpEFAn.20180604T085622Z", "http://app.dasch.swiss/resource/0001/cmfk1DMHRBiR4-_6HXpEFA?version=20180604T085622Z"},
		{"migrated legacy resource", "ark:/00000/0002-779b9990a0c3f-6e", "http://app.dasch.swiss/resource/0002/Ef9heHjPWDS7dMR_gGax2Q"},
		{"php resource", "ark:/00000/1/0803/751e0b8am", "http://data.dasch.swiss/resources/1"},
		{"php resource with citation date", "ark:/00000/1/0803/751e0b8am.20190118T102919000031660Z", "http://data.dasch.swiss/resources/1?citdate=20190118"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redirect, err := r.RedirectURL(tt.ark)
			require.NoError(t, err)
			assert.Equal(t, tt.want, redirect)
		})
	}
}

func TestResolverRejectsInvalidIdentifier(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.RedirectURL("ark:/00000/1/0001/cmfk1DMHRBir4=_6HXpEFAn")
	require.Error(t, err)
	assert.ErrorIs(t, err, &resolver.Error{Kind: resolver.KindValidation})
}

func TestResolverResourceIRI(t *testing.T) {
	r := newTestResolver(t)

	iri, err := r.ResourceIRI("ark:/00000/0002-751e0b8a-6.2021519")
	require.NoError(t, err)
	assert.Equal(t, "http://rdfh.ch/0002/70aWaB2kWsuiN6ujYgM0ZQ", iri)
}

func TestResolverBuildsARKURLs(t *testing.T) {
	r := newTestResolver(t)

	arkURL, err := r.ARKURL("http://rdfh.ch/0001/cmfk1DMHRBiR4-_6HXpEFA", "", "")
	require.NoError(t, err)
	assert.Equal(t, "https://ark.example.org/ark:/00000/1/0001/cmfk1DMHRBiR4=_6HXpEFAn", arkURL)

	arkURL, err = r.ARKURL("http://rdfh.ch/0001/cmfk1DMHRBiR4-_6HXpEFA", "pLlW4ODASumZfZFbJdpw1g", "20180604T085622513Z")
	require.NoError(t, err)
	assert.Equal(t, "https://ark.example.org/ark:/00000/1/0001/cmfk1DMHRBiR4=_6HXpEFAn/pLlW4ODASumZfZFbJdpw1gu.20180604T085622513Z", arkURL)
}

func TestResolverBuildParseRoundTrip(t *testing.T) {
	r := newTestResolver(t)

	arkID, err := r.ARKID("http://rdfh.ch/0002/0_sWRg5jT3S0PLxakX9ffg", "")
	require.NoError(t, err)

	info, err := r.Parse(arkID)
	require.NoError(t, err)
	assert.Equal(t, "0002", info.ProjectID)
	assert.Equal(t, "0_sWRg5jT3S0PLxakX9ffg", info.ResourceID)
}

func TestResolverConvertToV1(t *testing.T) {
	r := newTestResolver(t)

	converted, err := r.ConvertToV1("ark:/00000/0002-779b9990a0c3f-6e")
	require.NoError(t, err)
	assert.Equal(t, "ark:/00000/1/0002/Ef9heHjPWDS7dMR_gGax2Q0", converted)

	converted, err = r.ConvertToV1("ark:/00000/0002-779b9990a0c3f-6e.20190129")
	require.NoError(t, err)
	assert.Equal(t, "ark:/00000/1/0002/Ef9heHjPWDS7dMR_gGax2Q0.20190129T000000Z", converted)

	// Version 1 input comes back in canonical form.
	converted, err = r.ConvertToV1("ark:/00000/1/0001/cmfk1DMHRBiR4=_6HXpEFAn")
	require.NoError(t, err)
	assert.Equal(t, "ark:/00000/1/0001/cmfk1DMHRBiR4=_6HXpEFAn", converted)
}

func TestResolverStrictTemplates(t *testing.T) {
	r := newTestResolver(t, arkresolver.WithStrictTemplates())

	// The fixture resolves every placeholder, so strict mode succeeds.
	redirect, err := r.RedirectURL("ark:/00000/1/0001/cmfk1DMHRBiR4=_6HXpEFAn")
	require.NoError(t, err)
	assert.Equal(t, "http://app.dasch.swiss/resource/0001/cmfk1DMHRBiR4-_6HXpEFA", redirect)
}
