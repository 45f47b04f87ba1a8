package ncbi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPackageXML = `<?xml version="1.0"?>
<EXPERIMENT_PACKAGE_SET>
  <EXPERIMENT_PACKAGE>
    <EXPERIMENT accession="SRX100001">
      <TITLE>RNA-Seq of E. coli under oxidative stress</TITLE>
      <EXPERIMENT_LINKS>
        <EXPERIMENT_LINK>
          <URL_LINK>
            <LABEL>GEO Sample</LABEL>
            <URL>https://www.ncbi.nlm.nih.gov/geo/query/acc.cgi?acc=GSM1</URL>
          </URL_LINK>
        </EXPERIMENT_LINK>
      </EXPERIMENT_LINKS>
    </EXPERIMENT>
    <STUDY accession="SRP200001">
      <IDENTIFIERS>
        <PRIMARY_ID>SRP200001</PRIMARY_ID>
      </IDENTIFIERS>
      <STUDY_LINKS>
        <STUDY_LINK>
          <XREF_LINK>
            <DB>bioproject</DB>
            <ID>PRJNA1</ID>
          </XREF_LINK>
        </STUDY_LINK>
        <STUDY_LINK>
          <XREF_LINK>
            <DB>pubmed</DB>
            <ID>31234567</ID>
          </XREF_LINK>
        </STUDY_LINK>
      </STUDY_LINKS>
    </STUDY>
    <RUN_SET>
      <RUN accession="SRR500001"/>
      <RUN accession="SRR500002"/>
    </RUN_SET>
  </EXPERIMENT_PACKAGE>
</EXPERIMENT_PACKAGE_SET>`

func TestFetch_DecodesRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/efetch.fcgi", r.URL.Path)
		assert.Equal(t, "sra", r.URL.Query().Get("db"))
		assert.Equal(t, "SRR500001,SRR500002", r.URL.Query().Get("id"))
		fmt.Fprint(w, testPackageXML)
	}))
	defer server.Close()

	conn := NewConnection()
	conn.SetBaseURL(server.URL)

	q := NewListQuery("sra")
	q.Add("SRR500001")
	q.Add("SRR500002")
	assert.Equal(t, 2, q.Size())

	packages, err := conn.Fetch(q)
	require.NoError(t, err)
	require.Len(t, packages, 1)
	// The query resets after a fetch.
	assert.Zero(t, q.Size())

	pkg := packages[0]
	assert.Equal(t, "SRX100001", pkg.Experiment.Accession)
	assert.Equal(t, "RNA-Seq of E. coli under oxidative stress", pkg.Experiment.Title)
	require.Len(t, pkg.Experiment.Links, 1)
	assert.Equal(t, "GEO Sample", pkg.Experiment.Links[0].Label)
	assert.Equal(t, "SRP200001", pkg.Study.PrimaryID)
	assert.Equal(t, "31234567", pkg.Study.Pubmed())
	require.Len(t, pkg.RunSet.Runs, 2)
	assert.Equal(t, "SRR500001", pkg.RunSet.Runs[0].Accession)
}

func TestFetch_BatchCount(t *testing.T) {
	var batchSizes []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids := strings.Split(r.URL.Query().Get("id"), ",")
		batchSizes = append(batchSizes, len(ids))
		fmt.Fprint(w, `<EXPERIMENT_PACKAGE_SET></EXPERIMENT_PACKAGE_SET>`)
	}))
	defer server.Close()

	conn := NewConnection()
	conn.SetBaseURL(server.URL)

	// 250 ids at batch size 100 must issue 3 requests of 100, 100, 50.
	const batchSize = 100
	q := NewListQuery("sra")
	for i := 1; i <= 250; i++ {
		if q.Size() >= batchSize {
			_, err := conn.Fetch(q)
			require.NoError(t, err)
		}
		q.Add(fmt.Sprintf("SRR%06d", i))
	}
	_, err := conn.Fetch(q)
	require.NoError(t, err)

	assert.Equal(t, []int{100, 100, 50}, batchSizes)
}

func TestFetch_EmptyQueryIssuesNoRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request for empty query")
	}))
	defer server.Close()

	conn := NewConnection()
	conn.SetBaseURL(server.URL)
	packages, err := conn.Fetch(NewListQuery("sra"))
	require.NoError(t, err)
	assert.Empty(t, packages)
}

func TestFetch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusBadGateway)
	}))
	defer server.Close()

	conn := NewConnection()
	conn.SetBaseURL(server.URL)
	q := NewListQuery("sra")
	q.Add("SRR1")
	_, err := conn.Fetch(q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "efetch error 502")
}

func TestFetch_MalformedXML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<EXPERIMENT_PACKAGE_SET><broken")
	}))
	defer server.Close()

	conn := NewConnection()
	conn.SetBaseURL(server.URL)
	q := NewListQuery("sra")
	q.Add("SRR1")
	_, err := conn.Fetch(q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode efetch response")
}
