package sqlinline

const QInsertOrder = `--sql 7c1f2b9e-3a44-4d1b-9c62-0f8e5a7d3b21
insert into art_orders (
    order_id,
    status,
    email,
    locale,
    style_id,
    style_name,
    portrait_mode,
    image_url,
    style_image_url,
    style_image_urls,
    amount
)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb, $11)
returning id, created_at;
`

const QGetOrderByID = `--sql 5e9d0c17-84fb-4ac2-bb0d-62a91c4e7f58
select
    id,
    order_id,
    status,
    email,
    locale,
    style_id,
    style_name,
    portrait_mode,
    image_url,
    coalesce(style_image_url, ''),
    style_image_urls,
    result_urls,
    job_ids,
    prediction_details,
    coalesce(last_error, ''),
    amount,
    coalesce(payment_provider, ''),
    coalesce(payment_transaction_id, ''),
    created_at,
    paid_at,
    completed_at,
    failed_at
from art_orders
where order_id = $1;
`

const QMarkOrderPaid = `--sql 9b3a61d4-27c0-4f8e-a5b9-d14e8f02c6a7
update art_orders
set status = 'paid',
    payment_provider = $2,
    payment_transaction_id = $3,
    paid_at = now()
where order_id = $1
  and status = 'pending';
`

const QSetOrderProcessing = `--sql 2f84c5ab-6e19-4b77-8d03-4c5a9e1b7f36
update art_orders
set status = 'processing'
where order_id = $1;
`

const QSetOrderCompleted = `--sql c6e72f05-1b3d-4a98-b2c4-8f60d9a53e12
update art_orders
set status = 'completed',
    last_error = null,
    completed_at = coalesce(completed_at, now())
where order_id = $1;
`

const QSetOrderFailed = `--sql 0d5b8e93-f247-4c61-a87e-3b19c0d64f25
update art_orders
set status = 'failed',
    last_error = $2,
    failed_at = now()
where order_id = $1;
`

const QSetOrderProcessingError = `--sql 84f1a6c2-05de-4b39-97a1-6e20d8b45c73
update art_orders
set status = 'processing',
    last_error = $2
where order_id = $1;
`

const QCheckpointOrderProgress = `--sql 3a90d7e6-b582-4f1c-8e47-a1c35b9d20f4
update art_orders
set result_urls = $2::jsonb,
    job_ids = $3::jsonb,
    prediction_details = $4::jsonb
where order_id = $1;
`

const QSetOrderResults = `--sql e17c4b82-9a05-4d6f-b3e8-5d72f0c81a96
update art_orders
set result_urls = $2::jsonb
where order_id = $1;
`

const QListUnfinishedOrders = `--sql 6b28e9f0-4c71-4a53-92d6-0e84b7a1c5d9
select
    id,
    order_id,
    status,
    email,
    locale,
    style_id,
    style_name,
    portrait_mode,
    image_url,
    coalesce(style_image_url, ''),
    style_image_urls,
    result_urls,
    job_ids,
    prediction_details,
    coalesce(last_error, ''),
    amount,
    coalesce(payment_provider, ''),
    coalesce(payment_transaction_id, ''),
    created_at,
    paid_at,
    completed_at,
    failed_at
from art_orders
where status in ('paid', 'processing')
order by created_at asc;
`

const QLastOrderWithResults = `--sql f4a25c18-7e90-4b36-a1d2-8c63e5f09b47
select
    id,
    order_id,
    status,
    email,
    locale,
    style_id,
    style_name,
    portrait_mode,
    image_url,
    coalesce(style_image_url, ''),
    style_image_urls,
    result_urls,
    job_ids,
    prediction_details,
    coalesce(last_error, ''),
    amount,
    coalesce(payment_provider, ''),
    coalesce(payment_transaction_id, ''),
    created_at,
    paid_at,
    completed_at,
    failed_at
from art_orders
where result_urls is not null and jsonb_array_length(result_urls) > 0
order by id desc
limit 1;
`

const QDeleteExpiredOrders = `--sql 1c7d93b5-2a64-4e08-bf51-79e0a4d28c63
delete from art_orders
where created_at < $1;
`

const QUpsertResultImage = `--sql b8305e6a-d1f4-47c2-a96b-3e58f2c07d14
insert into art_order_result_images (order_id, image_index, content_type, data)
values ($1, $2, $3, $4)
on conflict (order_id, image_index)
do update set content_type = excluded.content_type, data = excluded.data;
`

const QGetResultImage = `--sql a92e6f03-58bc-4d17-b4a0-7c1d9e52f386
select content_type, data
from art_order_result_images
where order_id = $1 and image_index = $2;
`

const QDeleteExpiredResultImages = `--sql d04b72c9-ea36-4f85-91d7-5b28a0e63c41
delete from art_order_result_images
where created_at < $1;
`

const QUpsertSourceImage = `--sql 58c1d9e7-306f-4a24-b85c-f42a7d90e1b6
insert into art_order_source_images (order_id, content_type, data)
values ($1, $2, $3)
on conflict (order_id)
do update set content_type = excluded.content_type, data = excluded.data;
`

const QGetSourceImage = `--sql 47e0b3a9-c825-4d61-90f3-1a6c5e84d2b7
select content_type, data
from art_order_source_images
where order_id = $1;
`

const QHasSourceImage = `--sql 90a5f1d6-7b3e-4c08-ad92-e65b08c4f173
select exists (
    select 1 from art_order_source_images where order_id = $1
);
`
