// Package storage persists and retrieves the module's tabular artifacts.
//
// Local handles the on-disk layout: inventory tables are parquet files under
// one directory per format (flowbyfacility, flowbyprocess, flow, facility),
// reference totals and the validation sources ledger live under data/, and
// validation reports under validation/. Each stored inventory carries a JSON
// metadata descriptor beside it.
//
// DataCommons reads preprocessed source files anonymously from the public
// bucket that publishes them; FetchURL covers the plain HTTP downloads (zip
// bundles, workbooks). Neither retries: a failed download is logged by the
// caller and the run continues with a partial result.
package storage
