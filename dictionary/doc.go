/*
Package dictionary reads the jbovlaste XML export into typed records.

The export holds one <dictionary> element with two <direction> children,
lojban to English (<valsi> entries) and English to lojban (<nlword>
entries):

	<dictionary>
	  <direction from="lojban" to="English">
	    <valsi word="..." type="gismu">...</valsi>
	  </direction>
	  <direction from="English" to="lojban">
	    <nlword word="..." valsi="..."/>
	  </direction>
	</dictionary>

Parse reads the document in a single pass, one reader function per
element type, without building an intermediate tree. Reading is strict:
attributes or elements the schema does not declare, required fields
which never appear, and values which fail to parse all abort the read
with a *dicterr.Error. There is no partial result.

The records marshal to the JSON layout of the converted dictionary (see
WriteJSON): snake-case keys, absent optional fields omitted.
*/
package dictionary
